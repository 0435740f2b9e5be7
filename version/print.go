package version

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FprintVersion writes "<binary> <package> <version>" to w, followed by the revision when the binary
// was built with one.
func FprintVersion(w io.Writer) {
	args := []interface{}{filepath.Base(os.Args[0]), Package, Version}
	if Revision != "" {
		args = append(args, Revision)
	}
	fmt.Fprintln(w, args...)
}
