package file

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/bnema/vision3d-engine/internal/domain"
)

const meshExt = ".obj"

// WriteCorrespondences writes src[i] <-> tgt[i] pairs as an OBJ line mesh:
// all vertices first (source then target of each pair), then one edge per
// pair using 1-based vertex indices. ".obj" is appended when missing and the
// final path is returned.
func WriteCorrespondences(path string, src, tgt []domain.Point3) (string, error) {
	if len(src) != len(tgt) {
		return "", fmt.Errorf("correspondence length mismatch: %d source vs %d target points", len(src), len(tgt))
	}
	if !strings.HasSuffix(path, meshExt) {
		path += meshExt
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create mesh file: %w", err)
	}

	w := bufio.NewWriter(f)
	for i := range src {
		writeVertex(w, src[i])
		writeVertex(w, tgt[i])
	}
	for i := range src {
		n := i * 2
		fmt.Fprintf(w, "l %d %d\n", n+1, n+2)
	}

	if err := w.Flush(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write mesh file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close mesh file: %w", err)
	}

	return path, nil
}

func writeVertex(w *bufio.Writer, p domain.Point3) {
	fmt.Fprintf(w, "v %.6f %.6f %.6f\n", p[0], p[1], p[2])
}
