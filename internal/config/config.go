// Package config defines the option struct every codegen/* emitter
// accepts, populated through the functional-options pattern used
// throughout this module.
package config

import "fmt"

// Config holds every option recognised across all five emitters. Not
// every field matters to every target: SwiftModuleName is read only by
// codegen/swift, and the JVM package and library name fields (in both
// spellings) only by codegen/kotlin.
type Config struct {
	// CFunctionPrefix prefixes every emitted C-ABI function name, e.g.
	// "zcash_eip681" in zcash_eip681_parser_parse.
	CFunctionPrefix string
	// CTypePrefix prefixes every emitted C struct/enum type name, e.g.
	// "Ffi" in FfiTransactionRequest.
	CTypePrefix string

	// JVMPackage is the Java package the Kotlin bridge's native method
	// declarations resolve against for their JNI symbol names
	// (Java_<jvm_package>_<Class>_<method>). When nil, codegen/kotlin
	// uses "org.witffi." plus the WIT world name with hyphens removed;
	// the WIT package name is not used.
	JVMPackage *string
	// NativeLibraryName is the name passed to System.loadLibrary in the
	// generated Kotlin bridge. When nil, codegen/kotlin uses the WIT
	// world name; the WIT package name is not used.
	NativeLibraryName *string

	// KotlinPackage and LibraryName are an older generation of the
	// front end's naming for the same two fields as
	// JVMPackage/NativeLibraryName. Both generations are accepted;
	// codegen/kotlin prefers KotlinPackage/LibraryName when set, falling
	// back to JVMPackage/NativeLibraryName.
	KotlinPackage *string
	LibraryName   *string

	// SwiftModuleName names the generated Swift module and its
	// module.modulemap entry. Defaults to "WitFFI".
	SwiftModuleName string
}

// Option configures a Config. Options are applied in order, so a later
// option overrides an earlier one for the same field.
type Option func(*Config) error

// New builds a Config from opts, applying defaults for unset fields.
func New(opts ...Option) (Config, error) {
	cfg := Config{
		CFunctionPrefix: "witffi",
		CTypePrefix:     "Ffi",
		SwiftModuleName: "WitFFI",
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, fmt.Errorf("config: %w", err)
		}
	}
	return cfg, nil
}

// CFunctionPrefix sets the C-ABI function name prefix.
func CFunctionPrefix(prefix string) Option {
	return func(c *Config) error {
		if prefix == "" {
			return fmt.Errorf("c function prefix must not be empty")
		}
		c.CFunctionPrefix = prefix
		return nil
	}
}

// CTypePrefix sets the C struct/enum type name prefix.
func CTypePrefix(prefix string) Option {
	return func(c *Config) error {
		c.CTypePrefix = prefix
		return nil
	}
}

// JVMPackage sets the newer-generation JVM package field.
func JVMPackage(pkg string) Option {
	return func(c *Config) error {
		c.JVMPackage = &pkg
		return nil
	}
}

// NativeLibraryName sets the newer-generation native library name field.
func NativeLibraryName(name string) Option {
	return func(c *Config) error {
		c.NativeLibraryName = &name
		return nil
	}
}

// KotlinPackage sets the older-generation Kotlin package field.
func KotlinPackage(pkg string) Option {
	return func(c *Config) error {
		c.KotlinPackage = &pkg
		return nil
	}
}

// LibraryName sets the older-generation library name field.
func LibraryName(name string) Option {
	return func(c *Config) error {
		c.LibraryName = &name
		return nil
	}
}

// SwiftModuleName sets the Swift module name.
func SwiftModuleName(name string) Option {
	return func(c *Config) error {
		if name == "" {
			return fmt.Errorf("swift module name must not be empty")
		}
		c.SwiftModuleName = name
		return nil
	}
}

// ResolvedJVMPackage returns KotlinPackage if set, else JVMPackage if
// set, else fallback.
func (c Config) ResolvedJVMPackage(fallback string) string {
	if c.KotlinPackage != nil {
		return *c.KotlinPackage
	}
	if c.JVMPackage != nil {
		return *c.JVMPackage
	}
	return fallback
}

// ResolvedNativeLibraryName returns LibraryName if set, else
// NativeLibraryName if set, else fallback.
func (c Config) ResolvedNativeLibraryName(fallback string) string {
	if c.LibraryName != nil {
		return *c.LibraryName
	}
	if c.NativeLibraryName != nil {
		return *c.NativeLibraryName
	}
	return fallback
}
