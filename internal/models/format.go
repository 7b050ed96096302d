package models

// Format is a match size token, e.g. "7x7"
type Format string

const (
	Format6x6 Format = "6x6"
	Format7x7 Format = "7x7"
	Format8x8 Format = "8x8"
	Format9x9 Format = "9x9"
)

// formatPlayers maps each known format to the number of players needed
// to confirm a match
var formatPlayers = map[Format]int{
	Format6x6: 12,
	Format7x7: 14,
	Format8x8: 16,
	Format9x9: 18,
}

// KnownFormats returns the supported formats in display order
func KnownFormats() []Format {
	return []Format{Format6x6, Format7x7, Format8x8, Format9x9}
}

// IsValid reports whether the format is one of the known match sizes
func (f Format) IsValid() bool {
	_, ok := formatPlayers[f]
	return ok
}

// NeededPlayers returns the player quota for the format, or 0 for an
// unknown format
func (f Format) NeededPlayers() int {
	return formatPlayers[f]
}
