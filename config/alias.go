package config

import "path/filepath"

// AliasConfig locates the address book mapping short names to addresses.
type AliasConfig struct {
	AddressBook *AddressBookConfig `yaml:"addressBook"`
}

type AddressBookConfig struct {
	Path            string `yaml:"path"`
	CreateIfMissing bool   `yaml:"createIfMissing"`
}

// WithDefaults returns a copy of the AliasConfig with any missing fields set to
// their default values.
func (c AliasConfig) WithDefaults(configPath string) AliasConfig {
	cpy := c
	if cpy.AddressBook == nil {
		cpy.AddressBook = &AddressBookConfig{}
	} else {
		book := *cpy.AddressBook
		cpy.AddressBook = &book
	}
	if cpy.AddressBook.Path == "" {
		cpy.AddressBook.Path = filepath.Join(configPath, "addresses.yml")
		cpy.AddressBook.CreateIfMissing = true
	}
	return cpy
}
