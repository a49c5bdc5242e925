// Package audio plays Pokémon cries through whatever player the machine has.
package audio

import (
	"errors"
	"fmt"
	"math"
	"os/exec"
	"runtime"
	"strconv"

	"go.uber.org/zap"
)

// DefaultVolume matches the quiet level cries are played at in the overlay.
const DefaultVolume = 0.2

var ErrNoPlayer = errors.New("no audio player available")

type Player interface {
	Play(url string) error
}

type lookPathFunc func(file string) (string, error)
type startFunc func(name string, args ...string) error

// ExecPlayer launches an external process per cry and does not wait for it,
// so several cries can be playing at once.
type ExecPlayer struct {
	command  string
	volume   float64
	sugar    *zap.SugaredLogger
	lookPath lookPathFunc
	start    startFunc
}

// NewExecPlayer uses command if given, otherwise the first of mpv, ffplay or the OS opener found on PATH.
func NewExecPlayer(command string, volume float64, sugar *zap.SugaredLogger) *ExecPlayer {
	if volume <= 0 || volume > 1 {
		volume = DefaultVolume
	}
	return &ExecPlayer{
		command:  command,
		volume:   volume,
		sugar:    sugar,
		lookPath: exec.LookPath,
		start: func(name string, args ...string) error {
			cmd := exec.Command(name, args...)
			if err := cmd.Start(); err != nil {
				return err
			}
			go func() { _ = cmd.Wait() }()
			return nil
		},
	}
}

func (p *ExecPlayer) Play(url string) error {
	name, args, err := p.commandLine(url)
	if err != nil {
		return err
	}
	p.sugar.Debugf("Playing cry %s with %s", url, name)
	if err := p.start(name, args...); err != nil {
		return fmt.Errorf("starting %s: %w", name, err)
	}
	return nil
}

func (p *ExecPlayer) commandLine(url string) (string, []string, error) {
	percent := strconv.Itoa(int(math.Round(p.volume * 100)))
	candidates := []string{"mpv", "ffplay"}
	if p.command != "" {
		candidates = []string{p.command}
	}
	for _, name := range candidates {
		path, err := p.lookPath(name)
		if err != nil {
			continue
		}
		switch name {
		case "mpv":
			return path, []string{"--no-video", "--really-quiet", "--volume=" + percent, url}, nil
		case "ffplay":
			return path, []string{"-nodisp", "-autoexit", "-loglevel", "quiet", "-volume", percent, url}, nil
		default:
			return path, []string{url}, nil
		}
	}
	return p.opener(url)
}

// opener hands the url to the desktop's default application. Volume cannot be set this way.
func (p *ExecPlayer) opener(url string) (string, []string, error) {
	switch runtime.GOOS {
	case "windows":
		return "cmd", []string{"/c", "start", "", url}, nil
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd":
		if _, err := p.lookPath("xdg-open"); err == nil {
			return "xdg-open", []string{url}, nil
		}
	}
	return "", nil, ErrNoPlayer
}
