package ios

import (
	"os"

	"howett.net/plist"
)

const (
	InfoPlistName = "Info.plist"
)

const (
	KeyLSApplicationQueriesSchemes = "LSApplicationQueriesSchemes"
	KeyCFBundleURLTypes            = "CFBundleURLTypes"
)

// Info is a typed view of the keys of an application's Info.plist
// that the link helpers report on.
type Info struct {
	CFBundleDevelopmentRegion    string        `plist:"CFBundleDevelopmentRegion"`
	CFBundleDisplayName          string        `plist:"CFBundleDisplayName"`
	CFBundleExecutable           string        `plist:"CFBundleExecutable"`
	CFBundleIdentifier           string        `plist:"CFBundleIdentifier"`
	CFBundleName                 string        `plist:"CFBundleName"`
	CFBundlePackageType          string        `plist:"CFBundlePackageType"`
	CFBundleShortVersionString   string        `plist:"CFBundleShortVersionString"`
	CFBundleVersion              string        `plist:"CFBundleVersion"`
	CFBundleURLTypes             []URLType     `plist:"CFBundleURLTypes"`
	LSApplicationQueriesSchemes  []string      `plist:"LSApplicationQueriesSchemes"`
	LSRequiresIPhoneOS           bool          `plist:"LSRequiresIPhoneOS"`
	NSAppTransportSecurity       *AppTransport `plist:"NSAppTransportSecurity"`
	UIRequiredDeviceCapabilities []string      `plist:"UIRequiredDeviceCapabilities"`
}

type URLType struct {
	CFBundleTypeRole   string   `plist:"CFBundleTypeRole"`
	CFBundleURLName    string   `plist:"CFBundleURLName"`
	CFBundleURLSchemes []string `plist:"CFBundleURLSchemes"`
}

type AppTransport struct {
	NSAllowsArbitraryLoads bool `plist:"NSAllowsArbitraryLoads"`
}

// ReadInfo decodes the Info.plist at name.
func ReadInfo(name string) (*Info, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}

	info := &Info{}
	if _, err = plist.Unmarshal(b, info); err != nil {
		return nil, err
	}

	return info, nil
}

// URLSchemes returns every scheme the application registers
// across all of its CFBundleURLTypes.
func (i *Info) URLSchemes() []string {
	schemes := []string{}
	for _, urlType := range i.CFBundleURLTypes {
		schemes = append(schemes, urlType.CFBundleURLSchemes...)
	}

	return schemes
}
