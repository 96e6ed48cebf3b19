package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hlsplay/hlsplay/icon"
	"github.com/hlsplay/hlsplay/key"
	"github.com/spf13/viper"
)

// Validate checks the loaded values for ranges the player cannot work with.
func Validate() error {
	var errs []error

	if v := viper.GetInt(key.PlayerVolume); v < 0 || v > 100 {
		errs = append(errs, fmt.Errorf("%s must be between 0 and 100, got %d", key.PlayerVolume, v))
	}

	for _, k := range []string{
		key.PlayerSeekStep,
		key.PlayerCheckpointInterval,
		key.NetworkTimeout,
	} {
		if viper.GetInt(k) <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", k))
		}
	}

	for _, k := range []string{
		key.PlayerResumeThreshold,
		key.CacheMaxBytes,
		key.CacheMaxBackBytes,
		key.CachePauseRefreshThreshold,
	} {
		if viper.GetInt(k) < 0 {
			errs = append(errs, fmt.Errorf("%s must be non-negative", k))
		}
	}

	if v := viper.GetString(key.IconsVariant); !slices.Contains(icon.AvailableVariants(), v) {
		errs = append(errs, fmt.Errorf("%s must be one of %v, got %q", key.IconsVariant, icon.AvailableVariants(), v))
	}

	if viper.GetString(key.PlayerBinary) == "" {
		errs = append(errs, errors.New(key.PlayerBinary+" must not be empty"))
	}

	return errors.Join(errs...)
}
