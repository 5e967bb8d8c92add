// Command bunny shows an OBJ mesh in a window. Drag with the left mouse
// button to rotate it.
package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/matklad/bunny/pkg/render"
	"github.com/matklad/bunny/pkg/render/ebitenhost"
	"github.com/matklad/bunny/pkg/viewer"
)

const usage = "Usage: bunny model.obj"

// showFunc runs the window until it is closed.
type showFunc func(title string, v *viewer.Viewer, soft *render.Soft) error

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, ebitenhost.Run))
}

// run returns the process exit status.
func run(args []string, stdout io.Writer, show showFunc) int {
	if len(args) != 1 {
		fmt.Fprintln(stdout, usage)
		return 1
	}
	if err := view(args[0], show); err != nil {
		log.Print(err)
		return 1
	}
	return 0
}

func view(path string, show showFunc) (err error) {
	cfg := viewer.DefaultConfig()
	soft := render.NewSoft()

	v, err := viewer.Load(path, cfg, soft)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := v.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return show(cfg.Title, v, soft)
}
