// Command obj2stl converts an OBJ mesh to binary STL.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/matklad/bunny/pkg/mesh/sdfx"
	"github.com/matklad/bunny/pkg/obj"
)

func main() {
	if len(os.Args) != 3 {
		fmt.Println("Usage: obj2stl model.obj model.stl")
		os.Exit(1)
	}
	m, err := obj.Load(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	if err := sdfx.SaveSTL(os.Args[2], m); err != nil {
		log.Fatal(err)
	}
	log.Printf("obj2stl: wrote %d triangles to %s", m.TriangleCount(), os.Args[2])
}
