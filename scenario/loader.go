package scenario

// Loader reads a scenario and its settings from disk
// An empty SettingsPath selects the defaults
type Loader struct {
	ScenarioPath string
	SettingsPath string
}

// Load reads both files, scenario first
func (l Loader) Load() (Scenario, Settings, error) {
	scn, err := LoadScenario(l.ScenarioPath)
	if err != nil {
		return Scenario{}, Settings{}, err
	}

	set := Defaults()
	if l.SettingsPath != "" {
		if set, err = LoadSettings(l.SettingsPath); err != nil {
			return Scenario{}, Settings{}, err
		}
	}
	return scn, set, nil
}

// Paths lists the files a watcher should follow
func (l Loader) Paths() []string {
	paths := []string{l.ScenarioPath}
	if l.SettingsPath != "" {
		paths = append(paths, l.SettingsPath)
	}
	return paths
}
