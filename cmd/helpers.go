package cmd

import (
	"github.com/hearth-home/hearth-ctl/internal/config"
	"github.com/hearth-home/hearth-ctl/internal/errors"
)

// resolvePaths returns the path configuration, honoring an output dir
// override from the command line.
func resolvePaths(outputDir string) *config.Paths {
	p := config.DefaultPaths()
	if outputDir != "" {
		p.OutputDir = outputDir
	}
	return p
}

// resolveProfile loads the named profile from the profiles directory, or the
// active profile when no name is given.
func resolveProfile(paths *config.Paths, name string) (*config.Profile, error) {
	if name != "" {
		profile, err := config.LoadNamedProfile(paths.ProfilesDir, name)
		if err != nil {
			return nil, errors.ProfileError(err.Error(), nil)
		}
		return profile, nil
	}

	profile, err := config.LoadProfile(paths.ProfilePath)
	if err != nil {
		return nil, errors.ProfileError(err.Error(), nil)
	}
	return profile, nil
}
