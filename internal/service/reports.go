package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fitkz/fitcoach/internal/domain"
)

// WeeklyReport renders the weekly progress text for a user: this week's
// count against the goal, a comparison with the previous week, and streaks.
func (c *Coach) WeeklyReport(ctx context.Context, chatID int64, today time.Time) (string, error) {
	u, err := c.store.UserByChatID(ctx, chatID)
	if err != nil {
		return "", err
	}
	day := dateOnly(today)
	weekStart := day.AddDate(0, 0, -7)
	prevWeekStart := day.AddDate(0, 0, -14)

	thisWeek, err := c.store.CountCompletionsBetween(ctx, u.ID, weekStart, day.AddDate(0, 0, 1))
	if err != nil {
		return "", fmt.Errorf("count this week: %w", err)
	}
	lastWeek, err := c.store.CountCompletionsBetween(ctx, u.ID, prevWeekStart, weekStart)
	if err != nil {
		return "", fmt.Errorf("count last week: %w", err)
	}

	var comparison string
	switch {
	case thisWeek > lastWeek:
		comparison = fmt.Sprintf("📈 Өткен аптадан +%d жаттығу көп!", thisWeek-lastWeek)
	case thisWeek < lastWeek:
		comparison = fmt.Sprintf("📉 Өткен аптадан %d жаттығу аз", lastWeek-thisWeek)
	default:
		comparison = "📊 Өткен аптамен бірдей"
	}

	streak := u.CurrentStreak
	fire := ""
	if streak > 0 {
		fire = strings.Repeat("🔥", min(streak, 5))
	}

	progress := float64(thisWeek) / float64(c.weeklyGoal) * 100
	if progress > 100 {
		progress = 100
	}
	filled := int(progress / 10)
	bar := strings.Repeat("🟩", filled) + strings.Repeat("⬜", 10-filled)

	return fmt.Sprintf(`📊 *Апталық есеп*

🏋️ Бұл апта: *%d жаттығу*
🎯 Мақсат: %d жаттығу

%s %.0f%%

%s

%s Серия: *%d күн*
🏆 Рекорд: %d күн

💪 Келесі апта да жалғастыр!
`, thisWeek, c.weeklyGoal, bar, progress, comparison, fire, streak, u.BestStreak), nil
}

// ReminderMessage renders a streak-aware nudge with a goal-specific suffix.
// The variant choice uses the injected randomness source.
func (c *Coach) ReminderMessage(u *domain.User) string {
	streak := u.CurrentStreak

	var messages []string
	switch {
	case streak == 0:
		messages = []string{
			"⏰ Жаттығу уақыты келді! Бүгін бастау керек 💪",
			"🌟 Жаңа басталу - жаңа мүмкіндік! Бүгін жаттық!",
		}
	case streak < 3:
		messages = []string{
			fmt.Sprintf("⏰ Жаттығу уақыты! 🔥 Серия: %d күн - жалғастыр!", streak),
			fmt.Sprintf("💪 Тамаша! %d күн серия бар. Бүгін де жалғастыр!", streak),
		}
	case streak < 7:
		messages = []string{
			fmt.Sprintf("🔥🔥 %d күн серия! Аптаға жақындадың - тоқтама!", streak),
			fmt.Sprintf("⚡ Сен жаттығу машинасысың! %d күн серия!", streak),
		}
	default:
		messages = []string{
			fmt.Sprintf("🔥🔥🔥 %d күн серия! Сен чемпионсың! Жалғастыр!", streak),
			fmt.Sprintf("👑 %d күн серия - керемет! Тарихыңды жаз!", streak),
		}
	}

	message := messages[c.rng.Intn(len(messages))]

	switch u.Goal {
	case domain.GoalLoseWeight:
		message += "\n🎯 Салмақ жоғалту мақсатына жақындап жатырсың!"
	case domain.GoalGainMuscle:
		message += "\n💪 Бұлшық ет жинау үшін тұрақты жаттығу маңызды!"
	case domain.GoalStayFit:
		message += "\n🏃 Форманы сақтау үшін жалғастыр!"
	}
	return message
}

// UsersDueReminder returns the users whose reminder fires at the given
// instant: enabled, HH:MM match, and either no weekday filter or today in
// the set.
func (c *Coach) UsersDueReminder(ctx context.Context, at time.Time) ([]domain.User, error) {
	users, err := c.store.UsersWithReminders(ctx)
	if err != nil {
		return nil, fmt.Errorf("load reminder users: %w", err)
	}

	hhmm := at.Format("15:04")
	weekday := strings.ToLower(at.Weekday().String())

	var due []domain.User
	for _, u := range users {
		if u.ReminderTime != hhmm {
			continue
		}
		if len(u.ReminderDays) > 0 && !contains(u.ReminderDays, weekday) {
			continue
		}
		due = append(due, u)
	}
	return due, nil
}

func contains(days []string, day string) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
