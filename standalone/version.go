package standalone

import (
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/user-none/bigbox/launcher"
	"github.com/user-none/bigbox/locale"
)

// Version is the launcher version shown in the About box. Release builds
// set it with -ldflags "-X github.com/user-none/bigbox/standalone.Version=1.2.0".
var Version = "dev"

// ParrotInfo identifies the installed TeknoParrotUi.exe. The executable
// carries no readable version string, so size and timestamp stand in.
type ParrotInfo struct {
	Size     int64
	Modified time.Time
}

// String formats the info for the About box
func (p ParrotInfo) String() string {
	return fmt.Sprintf("%s, %s", p.Modified.Format("2006-01-02 15:04"), formatSize(p.Size))
}

// StatParrot reads the size and modification time of the Parrot UI
func StatParrot(path string) (ParrotInfo, error) {
	fi, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return ParrotInfo{}, fmt.Errorf("%w: %s", launcher.ErrParrotNotFound, path)
	}
	if err != nil {
		return ParrotInfo{}, err
	}
	return ParrotInfo{Size: fi.Size(), Modified: fi.ModTime()}, nil
}

// checkParrot logs the installed Parrot UI at startup. Nothing is
// enforced; a missing executable only matters for Back to Parrot.
func checkParrot(path string, skip bool, logger *zap.Logger) (ParrotInfo, bool) {
	if skip {
		logger.Debug("Parrot version check skipped")
		return ParrotInfo{}, false
	}
	info, err := StatParrot(path)
	if err != nil {
		logger.Warn("Parrot version check failed", zap.Error(err))
		return ParrotInfo{}, false
	}
	logger.Info("TeknoParrot UI found",
		zap.String("path", path),
		zap.Int64("size", info.Size),
		zap.Time("modified", info.Modified))
	return info, true
}

// parrotVersionText is the About box line for the Parrot UI
func parrotVersionText(lang locale.Lang, info ParrotInfo, known bool) string {
	if !known {
		return locale.Format(lang, locale.ParrotVersion, locale.Get(lang, locale.VersionUnknown))
	}
	return locale.Format(lang, locale.ParrotVersion, info.String())
}

func formatSize(n int64) string {
	const unit = 1024
	switch {
	case n < unit:
		return fmt.Sprintf("%d B", n)
	case n < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(n)/unit)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(unit*unit))
	}
}
