package display

import "fmt"

var sizeUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// FormatSize renders n bytes in binary units with one decimal above 1 KiB.
func FormatSize(n int64) string {
	if n < 0 {
		return "-" + FormatSize(-n)
	}
	v, i := float64(n), 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d B", n)
	}
	return fmt.Sprintf("%.1f %s", v, sizeUnits[i])
}

// SizeChange describes a batch's total size difference for the run
// summary, e.g. "saved 1.2 GiB (4.0 GiB -> 2.8 GiB)".
func SizeChange(in, out int64) string {
	span := fmt.Sprintf("(%s -> %s)", FormatSize(in), FormatSize(out))
	switch {
	case out < in:
		return fmt.Sprintf("saved %s %s", FormatSize(in-out), span)
	case out > in:
		return fmt.Sprintf("grew by %s %s", FormatSize(out-in), span)
	default:
		return "unchanged " + span
	}
}
