// Package aliases keeps a yaml address book so that short names can be used
// wherever an account or contract address is expected.
package aliases

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/OFFER-HUB/protocol-offer-hub/config"
	"github.com/OFFER-HUB/protocol-offer-hub/wire"
)

var ErrUnknownAlias = errors.New("unknown alias")

// Address is a validated strkey address.
type Address string

func (a *Address) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Wrap(
			fmt.Errorf("line %d: address must be a scalar", node.Line),
			"unmarshal yaml",
		)
	}
	parsed, err := wire.ParseAddress(strings.TrimSpace(node.Value))
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*a = Address(parsed.String())
	return nil
}

type Entry struct {
	Address Address `yaml:"address" json:"address"`
	Note    string  `yaml:"note,omitempty" json:"note,omitempty"`
}

// UnmarshalYAML accepts either a bare address or a mapping.
func (e *Entry) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var addr Address
		if err := node.Decode(&addr); err != nil {
			return err
		}
		*e = Entry{Address: addr}
		return nil
	case yaml.MappingNode:
		type plain Entry
		var tmp plain
		if err := node.Decode(&tmp); err != nil {
			return err
		}
		*e = Entry(tmp)
		return nil
	default:
		return errors.Wrap(
			fmt.Errorf("line %d: entry must be a scalar or mapping", node.Line),
			"unmarshal yaml",
		)
	}
}

type File struct {
	Aliases map[string]Entry `yaml:"aliases"`
}

// Book is safe for concurrent use. A book with a path saves itself after
// every change.
type Book struct {
	mu   sync.Mutex
	data File
	path string
}

func NewInMemory() *Book {
	return &Book{data: File{Aliases: map[string]Entry{}}}
}

// Open loads the configured address book, creating an empty one when
// allowed.
func Open(cfg *config.AddressBookConfig) (*Book, error) {
	b, err := Load(cfg.Path)
	if err == nil {
		return b, nil
	}
	if !os.IsNotExist(errors.Cause(err)) {
		return nil, errors.Wrap(err, "open")
	}
	if !cfg.CreateIfMissing {
		return nil, errors.Wrap(err, "open")
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, errors.Wrap(err, "open")
	}
	b = &Book{data: File{Aliases: map[string]Entry{}}, path: cfg.Path}
	if err := b.saveLocked(); err != nil {
		return nil, errors.Wrap(err, "open")
	}
	return b, nil
}

func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	return LoadFromReader(path, f)
}

// LoadFromReader reads a book from r. A non-empty path enables saving.
func LoadFromReader(path string, r io.Reader) (*Book, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "load address book")
	}
	if file.Aliases == nil {
		file.Aliases = make(map[string]Entry)
	}
	return &Book{data: file, path: path}, nil
}

// Put inserts or replaces an alias.
func (b *Book) Put(name, address, note string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("empty alias name")
	}
	parsed, err := wire.ParseAddress(address)
	if err != nil {
		return errors.Wrap(err, "put")
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.data.Aliases[name] = Entry{Address: Address(parsed.String()), Note: note}
	return b.saveLocked()
}

// Delete reports whether the alias existed.
func (b *Book) Delete(name string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.data.Aliases[name]; !ok {
		return false, nil
	}
	delete(b.data.Aliases, name)
	return true, b.saveLocked()
}

// List returns the alias names in order.
func (b *Book) List() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.data.Aliases))
	for k := range b.data.Aliases {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (b *Book) Get(name string) (Entry, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, ok := b.data.Aliases[name]
	return e, ok
}

// NameOf returns the alias of an address, picking the first name in order
// when several point to it.
func (b *Book) NameOf(address string) (string, bool) {
	for _, name := range b.List() {
		if e, ok := b.Get(name); ok && string(e.Address) == address {
			return name, true
		}
	}
	return "", false
}

// Resolve maps an alias to its address. Literal addresses pass through.
func (b *Book) Resolve(key string) (string, error) {
	if e, ok := b.Get(key); ok {
		return string(e.Address), nil
	}
	if a, err := wire.ParseAddress(strings.TrimSpace(key)); err == nil {
		return a.String(), nil
	}
	return "", errors.Wrapf(ErrUnknownAlias, "%q", key)
}

func (b *Book) saveLocked() error {
	if b.path == "" {
		return nil
	}
	tmp := b.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return errors.Wrap(err, "save address book")
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(&b.data); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, "save address book")
	}
	if err := enc.Close(); err != nil {
		f.Close()
		_ = os.Remove(tmp)
		return errors.Wrap(err, "save address book")
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return errors.Wrap(err, "save address book")
	}
	return errors.Wrap(os.Rename(tmp, b.path), "save address book")
}
