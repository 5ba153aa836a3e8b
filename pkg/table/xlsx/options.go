package xlsx

// LoadOptions configures how a workbook sheet maps to a CellModel.
type LoadOptions struct {
	// DefaultRenderer is assigned to every loaded cell. Defaults to "text".
	DefaultRenderer string
	// IncludeSizes specifies whether to import row heights and column
	// widths. If nil, defaults to true.
	IncludeSizes *bool
	// IncludeHidden specifies whether to import hidden row/column flags.
	// If nil, defaults to true.
	IncludeHidden *bool
	// IncludeBorders specifies whether to import cell border styles.
	// If nil, defaults to false since style introspection touches every
	// non-empty cell.
	IncludeBorders *bool
}

// DefaultLoadOptions returns default load options.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{}
}

// RendererName returns the renderer assigned to loaded cells.
func (o LoadOptions) RendererName() string {
	if o.DefaultRenderer == "" {
		return "text"
	}
	return o.DefaultRenderer
}

// ShouldIncludeSizes returns whether sizes are imported.
func (o LoadOptions) ShouldIncludeSizes() bool {
	if o.IncludeSizes != nil {
		return *o.IncludeSizes
	}
	return true
}

// ShouldIncludeHidden returns whether hidden flags are imported.
func (o LoadOptions) ShouldIncludeHidden() bool {
	if o.IncludeHidden != nil {
		return *o.IncludeHidden
	}
	return true
}

// ShouldIncludeBorders returns whether borders are imported.
func (o LoadOptions) ShouldIncludeBorders() bool {
	if o.IncludeBorders != nil {
		return *o.IncludeBorders
	}
	return false
}

// SaveOptions configures how a CellModel maps back to a workbook sheet.
type SaveOptions struct {
	// IncludeSizes specifies whether to write row heights and column
	// widths. If nil, defaults to true.
	IncludeSizes *bool
	// IncludeHidden specifies whether to write hidden row/column flags.
	// If nil, defaults to true.
	IncludeHidden *bool
	// IncludeBorders specifies whether to write cell borders as styles.
	// If nil, defaults to true.
	IncludeBorders *bool
}

// DefaultSaveOptions returns default save options.
func DefaultSaveOptions() SaveOptions {
	return SaveOptions{}
}

// ShouldIncludeSizes returns whether sizes are written.
func (o SaveOptions) ShouldIncludeSizes() bool {
	if o.IncludeSizes != nil {
		return *o.IncludeSizes
	}
	return true
}

// ShouldIncludeHidden returns whether hidden flags are written.
func (o SaveOptions) ShouldIncludeHidden() bool {
	if o.IncludeHidden != nil {
		return *o.IncludeHidden
	}
	return true
}

// ShouldIncludeBorders returns whether borders are written.
func (o SaveOptions) ShouldIncludeBorders() bool {
	if o.IncludeBorders != nil {
		return *o.IncludeBorders
	}
	return true
}
