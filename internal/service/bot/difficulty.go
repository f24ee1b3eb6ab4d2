package bot

import "github.com/iamasit07/connect4-solo/internal/domain"

type BotDifficulty string

const (
	DifficultyEasy   BotDifficulty = "easy"
	DifficultyMedium BotDifficulty = "medium"
	DifficultyHard   BotDifficulty = "hard"
)

// ParseDifficulty validates a difficulty name, returning fallback when the
// name is unknown or empty.
func ParseDifficulty(difficulty string, fallback BotDifficulty) BotDifficulty {
	switch difficulty {
	case "easy":
		return DifficultyEasy
	case "medium":
		return DifficultyMedium
	case "hard":
		return DifficultyHard
	default:
		return fallback
	}
}

// Depth maps a difficulty to a search depth. Hard plays at hardDepth.
func (d BotDifficulty) Depth(hardDepth int) int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	default:
		if hardDepth < 1 {
			return MINIMAX_DEPTH
		}
		return hardDepth
	}
}

// Name is the computer's display name for this difficulty.
func (d BotDifficulty) Name() string {
	return domain.GetBotName(string(d))
}
