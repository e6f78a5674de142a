package logging

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// consoleHandler renders a header line per record followed by indented
// fields. Info and above show a curated field list; debug shows everything.
type consoleHandler struct {
	mu        *sync.Mutex
	writer    io.Writer
	level     *slog.LevelVar
	attrs     []slog.Attr
	groups    []string
	addSource bool
}

func newConsoleHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	return &consoleHandler{mu: &sync.Mutex{}, writer: w, level: lvl, addSource: addSource}
}

func (h *consoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *consoleHandler) Handle(_ context.Context, record slog.Record) error {
	if !h.Enabled(context.Background(), record.Level) {
		return nil
	}

	ts := record.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	subj, fields := splitSubject(h.collect(record))
	message := strings.TrimSpace(record.Message)
	if message == "" {
		message = "(no message)"
	}

	var buf bytes.Buffer
	buf.Grow(256 + len(fields)*32)
	writeHeader(&buf, ts, record.Level, subj, message)
	if h.addSource {
		if src := record.Source(); src != nil && src.File != "" {
			fmt.Fprintf(&buf, " [%s:%d]", filepath.Base(src.File), src.Line)
		}
	}
	buf.WriteByte('\n')
	writeFields(&buf, fields, record.Level < slog.LevelInfo)

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(buf.Bytes())
	return err
}

// collect flattens handler and record attrs into dotted keys. Later values
// win for repeated keys while the first position is kept.
func (h *consoleHandler) collect(record slog.Record) []kv {
	flat := make([]kv, 0, record.NumAttrs()+len(h.attrs))
	for _, attr := range h.attrs {
		flattenAttr(&flat, h.groups, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		flattenAttr(&flat, h.groups, attr)
		return true
	})

	index := make(map[string]int, len(flat))
	out := flat[:0]
	for _, field := range flat {
		if field.key == "" {
			continue
		}
		if pos, ok := index[field.key]; ok {
			out[pos].value = field.value
			continue
		}
		index[field.key] = len(out)
		out = append(out, field)
	}
	return out
}

// splitSubject pulls the run/track context out of fields. The component is
// dropped from the field list; the other subject keys stay in it.
func splitSubject(fields []kv) (subject, []kv) {
	var subj subject
	rest := make([]kv, 0, len(fields))
	for _, field := range fields {
		switch field.key {
		case FieldComponent:
			subj.component = attrString(field.value)
			continue
		case FieldRunID:
			subj.runID = attrString(field.value)
		case FieldTrackIndex:
			subj.track = attrString(field.value)
		case FieldStep:
			subj.step = attrString(field.value)
		}
		rest = append(rest, field)
	}
	return subj, rest
}

func writeFields(buf *bytes.Buffer, fields []kv, verbose bool) {
	if verbose {
		for _, field := range fields {
			if skipInfoKey(field.key) {
				continue
			}
			fmt.Fprintf(buf, "    %s: %s\n", field.key, formatValue(field.value))
		}
		return
	}
	shown, hidden := selectInfoFields(fields)
	for _, field := range shown {
		fmt.Fprintf(buf, "    - %s: %s\n", field.label, field.value)
	}
	switch {
	case hidden == 1:
		buf.WriteString("    + 1 more field hidden\n")
	case hidden > 1:
		fmt.Fprintf(buf, "    + %d more fields hidden\n", hidden)
	}
}

type subject struct {
	component string
	runID     string
	track     string
	step      string
}

// String renders "Run abcd1234 · Track #3 (match)" with empty parts omitted.
func (s subject) String() string {
	var parts []string
	if id := strings.TrimSpace(s.runID); id != "" {
		parts = append(parts, "Run "+truncateID(id))
	}
	track, step := strings.TrimSpace(s.track), strings.TrimSpace(s.step)
	switch {
	case track != "" && step != "":
		parts = append(parts, "Track #"+track+" ("+step+")")
	case track != "":
		parts = append(parts, "Track #"+track)
	case step != "":
		parts = append(parts, step)
	}
	return strings.Join(parts, " · ")
}

func truncateID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func writeHeader(buf *bytes.Buffer, ts time.Time, level slog.Level, subj subject, message string) {
	buf.WriteString(formatTimestamp(ts))
	buf.WriteByte(' ')
	buf.WriteString(levelLabel(level))
	if subj.component != "" {
		buf.WriteString(" [" + subj.component + "]")
	}
	if rendered := subj.String(); rendered != "" {
		buf.WriteString(" " + rendered)
	}
	buf.WriteString(" – ")
	buf.WriteString(message)
}

func (h *consoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &clone
}

func (h *consoleHandler) WithGroup(name string) slog.Handler {
	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}

type kv struct {
	key   string
	value slog.Value
}

func flattenAttr(dst *[]kv, prefix []string, attr slog.Attr) {
	if attr.Equal(slog.Attr{}) {
		return
	}
	attr.Value = attr.Value.Resolve()
	if attr.Value.Kind() == slog.KindGroup {
		next := prefix
		if attr.Key != "" {
			next = append(append([]string(nil), prefix...), attr.Key)
		}
		for _, member := range attr.Value.Group() {
			flattenAttr(dst, next, member)
		}
		return
	}
	key := attr.Key
	if len(prefix) > 0 {
		key = strings.Join(prefix, ".") + "." + key
	}
	*dst = append(*dst, kv{key: key, value: attr.Value})
}

func levelLabel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARN"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}
