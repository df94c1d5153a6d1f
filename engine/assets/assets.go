package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/pageflip/engine/assets/loaders"
	"github.com/spaghettifunk/pageflip/engine/core"
	"github.com/spaghettifunk/pageflip/engine/resources"
)

// pending reload notifications before new ones are dropped
const reloadBacklog = 16

var (
	ErrAssetNotFound = errors.New("asset not found")
	ErrClosed        = errors.New("asset manager already closed")
)

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the page images and config files under a directory
// and, when watching, reports every change to an indexed file on
// Reloaded.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	watching bool
	isClosed bool
	reloaded chan string
	errors   chan error
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	am := &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]Loader),
		fsnotify: fsWatch,
		reloaded: make(chan string, reloadBacklog),
		errors:   make(chan error, reloadBacklog),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	am.registerLoader(resources.ResourceTypeImage, &loaders.ImageLoader{})
	am.registerLoader(resources.ResourceTypeConfig, &loaders.ConfigLoader{})
	return am, nil
}

// Initialize indexes assetsDir and starts the watcher when watch is set.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	if am.isClosed {
		return ErrClosed
	}
	root, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = root

	if !watch {
		return am.index(root)
	}
	am.watching = true
	go am.start()
	if err := am.watchRecursive(root); err != nil {
		return err
	}
	core.LogInfo("watching assets in %s", root)
	return nil
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType resources.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads name, a path relative to the asset directory, with the
// loader of its type.
func (am *AssetManager) LoadAsset(name string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	key := filepath.ToSlash(name)

	am.mutex.Lock()
	asset, exists := am.assets[key]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[key] = asset
	}
	am.mutex.Unlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	if asset.Type != resourceType {
		return nil, fmt.Errorf("asset %s is %s, not %s", name, asset.Type, resourceType)
	}
	loader, loaderExists := am.loaders[asset.Type]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type: %s", asset.Type)
	}

	res, err := loader.Load(asset.Path, resourceType, params)
	if err != nil {
		return nil, err
	}
	res.Name = key
	return res, nil
}

func (am *AssetManager) UnloadAsset(resource *resources.Resource) error {
	loader, ok := am.loaders[resource.Type]
	if !ok {
		return fmt.Errorf("no loader registered for asset type: %s", resource.Type)
	}
	return loader.Unload(resource)
}

// Assets lists the indexed names of one type in lexical order.
func (am *AssetManager) Assets(resourceType resources.ResourceType) []string {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	var names []string
	for name, info := range am.assets {
		if info.Type == resourceType {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func (am *AssetManager) Info(name string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[filepath.ToSlash(name)]
	return info, ok
}

// Reloaded yields the name of every indexed asset created or written
// while watching. It is closed by Close.
func (am *AssetManager) Reloaded() <-chan string {
	return am.reloaded
}

// Errors yields watcher failures. It is closed by Close.
func (am *AssetManager) Errors() <-chan error {
	return am.errors
}

// Close stops the watcher and closes the notification channels.
func (am *AssetManager) Close() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	if !am.watching {
		close(am.reloaded)
		close(am.errors)
		return am.fsnotify.Close()
	}
	close(am.done)
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer func() {
		am.fsnotify.Close()
		close(am.reloaded)
		close(am.errors)
		close(am.stopped)
	}()
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case e, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(e.Error())
			select {
			case am.errors <- e:
			default:
			}

		case <-am.done:
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	s, err := os.Stat(e.Name)
	if err == nil && s.IsDir() {
		if e.Op&fsnotify.Create != 0 {
			if err := am.watchRecursive(e.Name); err != nil {
				core.LogWarn("failed to watch %s: %s", e.Name, err)
			}
		}
		return
	}
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if name, ok := am.handleFileEvent(e.Name); ok {
			am.notify(name)
		}
	}
	// a removed directory cannot be stat'ed, so every removal also
	// drops a watch that may not exist
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.removeAsset(e.Name)
		am.fsnotify.Remove(e.Name)
	}
}

func (am *AssetManager) notify(name string) {
	select {
	case am.reloaded <- name:
		core.LogDebug("asset %s changed", name)
	default:
		core.LogWarn("dropped reload of %s, nobody is listening", name)
	}
}

// index walks path without watching it.
func (am *AssetManager) index(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fi.IsDir() {
			am.handleFileEvent(walkPath)
		}
		return nil
	})
}

// watchRecursive adds all directories under the given one to the watch
// list and indexes their files. A file created before its directory
// watch is in place is only picked up by the walk.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

func (am *AssetManager) nameOf(path string) (string, bool) {
	rel, err := filepath.Rel(am.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (string, bool) {
	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return "", false
	}
	name, ok := am.nameOf(path)
	if !ok {
		return "", false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[name] = AssetInfo{
		Path: path,
		Type: assetType,
	}
	return name, true
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	name, ok := am.nameOf(path)
	if !ok {
		return
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, name)
}

func determineAssetType(path string) resources.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return resources.ResourceTypeImage
	case ".toml", ".yaml", ".yml":
		return resources.ResourceTypeConfig
	default:
		return resources.ResourceTypeNone
	}
}
