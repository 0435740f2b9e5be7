package migrations

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"text/template"

	"github.com/benbjohnson/clock"
)

const (
	planSeqFormat      = "20060102150405"
	planNameFormat     = `\A[a-z0-9_]+\z`
	planPackageFormat  = `\A[a-z][a-z0-9_]*\z`
	defaultPlanPackage = "migrations"
)

const planTemplate = `package {{ .Package }}

import "github.com/marianatek/adddefault/migrations"

func init() {
	migrations.Register(&migrations.Plan{
		ID:         "{{ .Sequence }}_{{ .Name }}",
		Operations: []migrations.Operation{},
	})
}
`

// for test purposes (mocking)
var systemClock clock.Clock = clock.New()

// NewFromTemplate creates a new plan file under dir, declared in package pkg, and returns its full
// path. An empty pkg defaults to "migrations".
func NewFromTemplate(dir, pkg, name string) (string, error) {
	if pkg == "" {
		pkg = defaultPlanPackage
	}

	matched, err := regexp.MatchString(planNameFormat, name)
	if err != nil {
		return "", fmt.Errorf("unable to validate name: %w", err)
	}
	if !matched {
		return "", errors.New("name can only contain lowercase alphanumeric and underscore characters")
	}
	if ok, _ := regexp.MatchString(planPackageFormat, pkg); !ok {
		return "", fmt.Errorf("invalid package name %q", pkg)
	}

	if stat, err := os.Stat(dir); err != nil || !stat.IsDir() {
		return "", fmt.Errorf("%q directory not found in path", dir)
	}

	tmpl, err := template.New("").Parse(planTemplate)
	if err != nil {
		return "", fmt.Errorf("failure loading template: %w", err)
	}

	t := systemClock.Now().UTC().Format(planSeqFormat)
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.go", t, name))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("unable to create file: %w", err)
	}
	defer f.Close()

	if err = tmpl.Execute(f, struct {
		Package  string
		Sequence string
		Name     string
	}{
		Package:  pkg,
		Sequence: t,
		Name:     name,
	}); err != nil {
		return "", fmt.Errorf("failure processing template: %w", err)
	}

	return path, nil
}
