package xcode

const (
	BuildSettingInfoPlistFile = "INFOPLIST_FILE"
)

// DefaultBuildConfiguration returns the configuration in list whose name
// matches the list's defaultConfigurationName, falling back to the first
// configuration in the list. It returns false if the list is empty or its
// first configuration cannot be found in lookup.
func DefaultBuildConfiguration(list ConfigurationList, lookup map[string]BuildConfiguration) (BuildConfiguration, bool) {
	if len(list.BuildConfigurations) == 0 {
		return BuildConfiguration{}, false
	}

	acc, ok := lookup[list.BuildConfigurations[0]]
	for _, ref := range list.BuildConfigurations {
		if cfg, found := lookup[ref]; found && cfg.Name == list.DefaultConfigurationName {
			acc, ok = cfg, true
		}
	}

	return acc, ok
}

// FirstTarget returns the primary target of the project.
func (p *Project) FirstTarget() (Target, bool) {
	if p == nil || len(p.Targets) == 0 {
		return Target{}, false
	}

	return p.Targets[0], true
}

// BuildSetting returns the value of the build setting name from the default
// build configuration of the project's first target. Other targets are
// intentionally never consulted: a secondary target (e.g. tvOS) commonly
// overrides the same settings with values that do not apply to the app.
func (p *Project) BuildSetting(name string) (any, bool) {
	target, ok := p.FirstTarget()
	if !ok {
		return nil, false
	}

	list, ok := p.ConfigurationLists[target.BuildConfigurationList]
	if !ok {
		return nil, false
	}

	cfg, ok := DefaultBuildConfiguration(list, p.BuildConfigurations)
	if !ok {
		return nil, false
	}

	value, ok := cfg.BuildSettings[name]
	return value, ok
}
