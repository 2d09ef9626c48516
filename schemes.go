package xclink

import (
	"context"
	"fmt"

	xslice "github.com/frantjc/x/slice"
	"github.com/frantjc/xclink/internal/xclinkregexp"
	"github.com/frantjc/xclink/ios"
	"github.com/frantjc/xclink/xcode"
)

// InjectQuerySchemes adds each of schemes that is not already present to
// the Info.plist's LSApplicationQueriesSchemes and records the ones it
// added in TempFileName so that RestoreQuerySchemes can remove exactly
// those again. It returns the schemes that were added.
func (h *Helpers) InjectQuerySchemes(ctx context.Context, schemes ...string) ([]string, error) {
	for _, scheme := range schemes {
		if !xclinkregexp.IsURLScheme(scheme) {
			return nil, fmt.Errorf("invalid URL scheme %q", scheme)
		}
	}

	info, err := h.ReadPlist()
	if err != nil {
		return nil, err
	} else if info == nil {
		return nil, xcode.ErrNoInfoPlist
	}

	queries, err := querySchemes(info)
	if err != nil {
		return nil, err
	}

	injected := []string{}
	for _, scheme := range schemes {
		if !xslice.Includes(stringsOf(queries), scheme) {
			queries = append(queries, scheme)
			injected = append(injected, scheme)
		}
	}

	if len(injected) == 0 {
		return injected, nil
	}

	info[ios.KeyLSApplicationQueriesSchemes] = queries
	if err = h.WritePlist(info); err != nil {
		return nil, err
	}

	recorded := []string{}
	if h.ModuleJSONExists(ctx, TempFileName) {
		if err = h.ReadModuleJSON(ctx, TempFileName, &recorded); err != nil {
			return nil, err
		}
	}

	for _, scheme := range injected {
		if !xslice.Includes(recorded, scheme) {
			recorded = append(recorded, scheme)
		}
	}

	if err = h.WriteModuleJSON(ctx, TempFileName, recorded); err != nil {
		return nil, err
	}

	LoggerFrom(ctx).Info("injected query schemes", "schemes", injected)

	return injected, nil
}

// RestoreQuerySchemes removes the query schemes recorded by
// InjectQuerySchemes from the Info.plist and deletes the record.
// It returns the schemes that were removed.
func (h *Helpers) RestoreQuerySchemes(ctx context.Context) ([]string, error) {
	removed := []string{}
	if !h.ModuleJSONExists(ctx, TempFileName) {
		return removed, nil
	}

	recorded := []string{}
	if err := h.ReadModuleJSON(ctx, TempFileName, &recorded); err != nil {
		return nil, err
	}

	info, err := h.ReadPlist()
	if err != nil {
		return nil, err
	}

	if info != nil {
		queries, err := querySchemes(info)
		if err != nil {
			return nil, err
		}

		kept := []any{}
		for _, query := range queries {
			if scheme, ok := query.(string); ok && xslice.Includes(recorded, scheme) {
				removed = append(removed, scheme)
				continue
			}

			kept = append(kept, query)
		}

		if len(removed) > 0 {
			info[ios.KeyLSApplicationQueriesSchemes] = kept
			if err = h.WritePlist(info); err != nil {
				return nil, err
			}
		}
	}

	if err = h.RemoveModuleJSON(ctx, TempFileName); err != nil {
		return nil, err
	}

	LoggerFrom(ctx).Info("restored query schemes", "schemes", removed)

	return removed, nil
}

func querySchemes(info map[string]any) ([]any, error) {
	value, ok := info[ios.KeyLSApplicationQueriesSchemes]
	if !ok {
		return []any{}, nil
	}

	queries, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%s is a %T, not an array", ios.KeyLSApplicationQueriesSchemes, value)
	}

	return queries, nil
}

func stringsOf(values []any) []string {
	strs := []string{}
	for _, value := range values {
		if str, ok := value.(string); ok {
			strs = append(strs, str)
		}
	}

	return strs
}
