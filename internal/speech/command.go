package speech

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lisquiz/lisquiz/internal/logger"
)

// Engine selection values.
const (
	SelectAuto = "auto"
	SelectOff  = "off"
)

// Binaries tried by SelectAuto, in order.
var autoBinaries = []string{"say", "espeak-ng", "espeak"}

// voiceListTimeout bounds the voice listing command.
const voiceListTimeout = 10 * time.Second

// CommandEngine speaks through a platform command: say on macOS,
// espeak-ng or espeak elsewhere. Its voice list is loaded in the
// background by Load.
type CommandEngine struct {
	name string
	path string

	// run executes a command and returns its stdout. Replaced in tests.
	run func(ctx context.Context, name string, args ...string) ([]byte, error)

	mu      sync.Mutex
	voices  []Voice
	loaded  bool
	pending func()
}

// NewCommandEngine resolves selection ("auto", "off", or a binary name)
// into an engine. The engine reports Available() == false when nothing
// usable is installed.
func NewCommandEngine(selection string) *CommandEngine {
	e := &CommandEngine{run: runCommand}
	switch selection {
	case SelectOff:
		return e
	case "", SelectAuto:
		for _, bin := range autoBinaries {
			if path, err := exec.LookPath(bin); err == nil {
				e.name, e.path = bin, path
				return e
			}
		}
		return e
	default:
		if path, err := exec.LookPath(selection); err == nil {
			e.name, e.path = engineName(selection), path
		}
		return e
	}
}

func engineName(bin string) string {
	base := bin
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".exe")
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stdout.Bytes(), nil
}

// Name implements Engine.
func (e *CommandEngine) Name() string {
	if e.name == "" {
		return "none"
	}
	return e.name
}

// Available implements Engine.
func (e *CommandEngine) Available() bool {
	return e.path != ""
}

// Voices implements Engine.
func (e *CommandEngine) Voices() []Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Voice(nil), e.voices...)
}

// OnVoicesChanged implements Engine.
func (e *CommandEngine) OnVoicesChanged(fn func()) {
	e.mu.Lock()
	if e.loaded {
		e.mu.Unlock()
		fn()
		return
	}
	e.pending = fn
	e.mu.Unlock()
}

// Load lists the installed voices in the background and fires the
// pending voices-changed callback when done, even if listing failed.
func (e *CommandEngine) Load(ctx context.Context) {
	if !e.Available() {
		e.setVoices(nil)
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(ctx, voiceListTimeout)
		defer cancel()
		voices, err := e.listVoices(ctx)
		if err != nil {
			logger.Warn("speech: listing voices failed", logrus.Fields{"engine": e.name, "error": err.Error()})
		}
		e.setVoices(voices)
	}()
}

// LoadSync lists the installed voices and waits for the result.
func (e *CommandEngine) LoadSync(ctx context.Context) ([]Voice, error) {
	if !e.Available() {
		e.setVoices(nil)
		return nil, ErrUnsupported
	}
	voices, err := e.listVoices(ctx)
	e.setVoices(voices)
	return voices, err
}

func (e *CommandEngine) setVoices(voices []Voice) {
	e.mu.Lock()
	e.voices = voices
	e.loaded = true
	fn := e.pending
	e.pending = nil
	e.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (e *CommandEngine) listVoices(ctx context.Context) ([]Voice, error) {
	switch e.name {
	case "say":
		out, err := e.run(ctx, e.path, "-v", "?")
		if err != nil {
			return nil, err
		}
		return parseSayVoices(out), nil
	default:
		out, err := e.run(ctx, e.path, "--voices")
		if err != nil {
			return nil, err
		}
		return parseEspeakVoices(out), nil
	}
}

// Speak implements Engine.
func (e *CommandEngine) Speak(ctx context.Context, u Utterance) error {
	if !e.Available() {
		return ErrUnsupported
	}
	_, err := e.run(ctx, e.path, e.args(u)...)
	return err
}

// args builds the command line for u. Both engines take a words-per-minute
// rate; 175 wpm is treated as rate 1.0. espeak pitch runs 0-99 around 50.
func (e *CommandEngine) args(u Utterance) []string {
	wpm := strconv.Itoa(int(175 * ClampRate(u.Rate)))
	var args []string
	switch e.name {
	case "say":
		if u.Voice != "" {
			args = append(args, "-v", u.Voice)
		}
		args = append(args, "-r", wpm)
	default:
		switch {
		case u.Voice != "":
			args = append(args, "-v", u.Voice)
		case u.Lang != "":
			args = append(args, "-v", strings.ToLower(u.Lang))
		}
		pitch := int(50 * ClampPitch(u.Pitch))
		if pitch > 99 {
			pitch = 99
		}
		args = append(args, "-s", wpm, "-p", strconv.Itoa(pitch))
	}
	return append(args, "--", u.Text)
}

// sayLine matches "Alex                en_US    # Most people recognize me."
var sayLine = regexp.MustCompile(`^(.+?)\s+([a-z]{2,3}[_-][A-Za-z0-9]+)\s+#`)

func parseSayVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		m := sayLine.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		voices = append(voices, Voice{Name: strings.TrimSpace(m[1]), Lang: strings.ReplaceAll(m[2], "_", "-")})
	}
	return voices
}

// parseEspeakVoices reads the table printed by "espeak-ng --voices":
//
//	Pty Language       Age/Gender VoiceName          File          Other Languages
//	 5  en-us           --/M      English_(America)  gmw/en-US     (en 10)
func parseEspeakVoices(out []byte) []Voice {
	var voices []Voice
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) < 4 || fields[0] == "Pty" {
			continue
		}
		if _, err := strconv.Atoi(fields[0]); err != nil {
			continue
		}
		voices = append(voices, Voice{Name: fields[3], Lang: fields[1]})
	}
	return voices
}
