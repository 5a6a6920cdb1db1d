// Package catalog - Catalog loading
// A catalog is a directory of per-service JSON files (cloudServer.json, lms.json, ...).
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"cloud-quote/internal/errors"
	"cloud-quote/internal/logging"
)

//go:embed data/*.json
var defaultData embed.FS

// section binds a catalog file to the field it populates
type section struct {
	file string
	bind func(c *Catalog) any
}

var sections = []section{
	{"cloudServer.json", func(c *Catalog) any { return &c.CloudServer }},
	{"blockStorage.json", func(c *Catalog) any { return &c.BlockStorage }},
	{"snapshot.json", func(c *Catalog) any { return &c.Snapshot }},
	{"database.json", func(c *Catalog) any { return &c.Database }},
	{"simpleStorage.json", func(c *Catalog) any { return &c.SimpleStorage }},
	{"loadBalancer.json", func(c *Catalog) any { return &c.LoadBalancer }},
	{"kubernetes.json", func(c *Catalog) any { return &c.Kubernetes }},
	{"kafka.json", func(c *Catalog) any { return &c.Kafka }},
	{"callCenter.json", func(c *Catalog) any { return &c.CallCenter }},
	{"businessEmail.json", func(c *Catalog) any { return &c.BusinessEmail }},
	{"email.json", func(c *Catalog) any { return &c.Email }},
	{"lms.json", func(c *Catalog) any { return &c.LMS }},
	{"wanIp.json", func(c *Catalog) any { return &c.WanIP }},
	{"backupSchedule.json", func(c *Catalog) any { return &c.BackupSchedule }},
	{"customImage.json", func(c *Catalog) any { return &c.CustomImage }},
	{"cloudVps.json", func(c *Catalog) any { return &c.CloudVPS }},
	{"vpn.json", func(c *Catalog) any { return &c.VPN }},
	{"waf.json", func(c *Catalog) any { return &c.WAF }},
	{"cdn.json", func(c *Catalog) any { return &c.CDN }},
	{"containerRegistry.json", func(c *Catalog) any { return &c.ContainerRegistry }},
}

// Default returns the built-in catalog
func Default() (*Catalog, error) {
	sub, err := fs.Sub(defaultData, "data")
	if err != nil {
		return nil, errors.Internal("open built-in catalog", err)
	}
	return LoadFS(sub)
}

// LoadDir loads a catalog from a directory on disk
func LoadDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("catalog directory", dir)
		}
		return nil, errors.Wrapf(errors.TypeConfig, err, "stat catalog directory %s", dir)
	}
	if !info.IsDir() {
		return nil, errors.Newf(errors.TypeConfig, "catalog path is not a directory: %s", dir)
	}
	return LoadFS(os.DirFS(dir))
}

// LoadFS loads every known section present in fsys. Missing files leave their
// section nil; malformed files and failed validation are errors.
func LoadFS(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}
	loaded := 0

	for _, s := range sections {
		data, err := fs.ReadFile(fsys, s.file)
		if err != nil {
			if stderrors.Is(err, fs.ErrNotExist) {
				logging.Debug("catalog section missing", zap.String("file", s.file))
				continue
			}
			return nil, errors.Wrapf(errors.TypeParsing, err, "read %s", s.file)
		}

		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(s.bind(c)); err != nil {
			return nil, errors.Parsing("decode "+s.file, err).WithContext("file", s.file)
		}
		loaded++
	}

	if err := c.Validate(DefaultValidationRules()); err != nil {
		return nil, errors.Catalog("catalog failed validation", err)
	}

	logging.Debug("catalog loaded", zap.Int("sections", loaded))
	return c, nil
}

// ExportDefault writes the built-in catalog files into dir so they can be edited.
func ExportDefault(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "create %s", dir)
	}

	var written []string
	for _, s := range sections {
		data, err := defaultData.ReadFile("data/" + s.file)
		if err != nil {
			return written, errors.Internal("read built-in "+s.file, err)
		}
		path := filepath.Join(dir, s.file)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, errors.Wrapf(errors.TypeConfig, err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}
