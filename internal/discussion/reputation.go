package discussion

// BadgeTier is the coarse reputation badge shown next to an author.
type BadgeTier string

const (
	BadgeExpert  BadgeTier = "expert"
	BadgeTrusted BadgeTier = "trusted"
	BadgeActive  BadgeTier = "active"
	BadgeNew     BadgeTier = "new"
)

// BadgeFor maps a raw reputation score to its badge tier.
func BadgeFor(score int) BadgeTier {
	switch {
	case score >= 90:
		return BadgeExpert
	case score >= 75:
		return BadgeTrusted
	case score >= 60:
		return BadgeActive
	default:
		return BadgeNew
	}
}
