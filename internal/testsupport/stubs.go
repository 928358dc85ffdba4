package testsupport

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"clipsplit/internal/config"
)

func callLog(binary string) string {
	return binary + ".calls"
}

func ffmpegScript(logPath string, failInputs []string) string {
	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	b.WriteString("src=\"\"\ndst=\"\"\nprev=\"\"\n")
	b.WriteString("for arg in \"$@\"; do\n")
	b.WriteString("  if [ \"$prev\" = \"-i\" ]; then src=\"$arg\"; fi\n")
	b.WriteString("  prev=\"$arg\"\n  dst=\"$arg\"\ndone\n")
	fmt.Fprintf(&b, "echo \"$*\" >> '%s'\n", logPath)
	if len(failInputs) > 0 {
		b.WriteString("case \"$(basename \"$src\")\" in\n")
		fmt.Fprintf(&b, "  %s)\n", strings.Join(quoteAll(failInputs), "|"))
		b.WriteString("    echo \"$src: Invalid data found when processing input\" >&2\n")
		b.WriteString("    exit 3\n    ;;\nesac\n")
	}
	b.WriteString(": > \"$dst\"\n")
	return b.String()
}

func ffprobeScript(width, height int) string {
	return fmt.Sprintf(`#!/bin/sh
cat <<'JSON'
{"streams":[{"index":0,"codec_name":"h264","codec_type":"video","width":%d,"height":%d},{"index":1,"codec_name":"aac","codec_type":"audio","channels":2}],"format":{"nb_streams":2,"format_name":"mov,mp4"}}
JSON
`, width, height)
}

func quoteAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = "'" + strings.ReplaceAll(v, "'", `'\''`) + "'"
	}
	return out
}

// Calls returns the argument lines recorded by the stub ffmpeg in order.
func Calls(t testing.TB, cfg *config.Config) []string {
	t.Helper()

	data, err := os.ReadFile(callLog(cfg.FFmpeg.Binary))
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("read ffmpeg call log: %v", err)
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
