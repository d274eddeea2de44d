package seed

import "github.com/fitkz/fitcoach/internal/domain"

// Achievements is the fixed badge catalog. Codes are stable; the engine's
// rule table references them by code.
func Achievements() []domain.Achievement {
	return []domain.Achievement{
		{Code: "first_workout", Title: "Бірінші жаттығу", Emoji: "🎯", Description: "Алғашқы жаттығуды аяқтадың!"},
		{Code: "streak_3", Title: "3 күн серия", Emoji: "🔥", Description: "3 күн қатарынан жаттықтың!"},
		{Code: "streak_7", Title: "7 күн серия", Emoji: "🔥🔥", Description: "Бір апта серия! Тамаша!"},
		{Code: "streak_14", Title: "2 апта серия", Emoji: "🔥🔥🔥", Description: "2 апта қатарынан!"},
		{Code: "streak_30", Title: "30 күн серия", Emoji: "👑", Description: "Бір ай! Сен чемпионсың!"},
		{Code: "workouts_10", Title: "10 жаттығу", Emoji: "💪", Description: "10 жаттығу орындадың!"},
		{Code: "workouts_25", Title: "25 жаттығу", Emoji: "💪💪", Description: "25 жаттығу! Жарайсың!"},
		{Code: "workouts_50", Title: "50 жаттығу", Emoji: "🏆", Description: "50 жаттығу - үлкен жетістік!"},
		{Code: "workouts_100", Title: "100 жаттығу", Emoji: "🥇", Description: "100 жаттығу! Керемет!"},
	}
}
