//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Renders the default gesture script to PNG frames in frames/.
func (Run) Render() error {
	fmt.Println("Render frames...")
	if _, err := executeCmd("go", withArgs("run", ".", "render", "--out", "frames", "--every", "2"), withStream()); err != nil {
		return err
	}
	return nil
}

// Prints the flip states of the default gesture script.
func (Run) Trace() error {
	if _, err := executeCmd("go", withArgs("run", ".", "trace"), withStream()); err != nil {
		return err
	}
	return nil
}

// Plots every easing curve.
func (Run) Curve() error {
	if _, err := executeCmd("go", withArgs("run", ".", "curve"), withStream()); err != nil {
		return err
	}
	return nil
}
