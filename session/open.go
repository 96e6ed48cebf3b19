package session

import (
	"fmt"

	"github.com/hlsplay/hlsplay/history"
	"github.com/hlsplay/hlsplay/key"
	"github.com/hlsplay/hlsplay/network"
	"github.com/hlsplay/hlsplay/player"
	"github.com/hlsplay/hlsplay/where"
	"github.com/spf13/viper"
)

// Open starts mpv with the configured options and returns a session around it. Failing to start
// the engine is fatal: a session without an engine has nothing to control.
func Open(store *history.Store) (*Session, error) {
	volume := viper.GetInt(key.PlayerVolume)

	mpv, err := player.StartMPV(player.Options{
		Binary:            viper.GetString(key.PlayerBinary),
		WindowID:          viper.GetString(key.PlayerWindowID),
		Volume:            volume,
		CacheMaxBytes:     viper.GetInt(key.CacheMaxBytes),
		CacheMaxBackBytes: viper.GetInt(key.CacheMaxBackBytes),
		SocketDir:         where.Temp(),
	})
	if err != nil {
		return nil, fmt.Errorf("start player: %w", err)
	}

	facade := player.NewFacade(mpv, player.WithVolume(volume))
	prober := network.NewProber(network.ClientFromConfig())

	return New(facade, store, prober, ConfigFromViper()), nil
}
