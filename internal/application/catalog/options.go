package catalog

import "github.com/erp/catalog/internal/domain/catalog"

// Options tunes service behavior that differs between deployments
type Options struct {
	// UpdateMode decides whether fields omitted from an update are cleared
	UpdateMode catalog.UpdateMode
	// VerifyReferences makes creates reject references to missing parents
	VerifyReferences bool
}

// DefaultOptions returns replace-mode updates without reference checks
func DefaultOptions() Options {
	return Options{UpdateMode: catalog.UpdateModeReplace}
}

func (o Options) normalized() Options {
	if o.UpdateMode == "" {
		o.UpdateMode = catalog.UpdateModeReplace
	}
	return o
}
