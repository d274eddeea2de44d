// Package seed carries the built-in workout and achievement catalogs and
// loads them idempotently into a store.
package seed

import "github.com/fitkz/fitcoach/internal/domain"

func tpl(code, title string, level domain.Level, wt domain.WorkoutType, goal domain.Goal, day int, exercises ...domain.Exercise) domain.WorkoutTemplate {
	return domain.WorkoutTemplate{
		Code:        code,
		Title:       title,
		Level:       level,
		WorkoutType: wt,
		Goal:        goal,
		DayIndex:    day,
		Exercises:   exercises,
	}
}

func ex(name string, sets int, reps string) domain.Exercise {
	return domain.Exercise{Name: name, Sets: sets, Reps: reps}
}

// Templates is the built-in catalog. Combinations without a template for a
// given day are rest days, which is intentional.
func Templates() []domain.WorkoutTemplate {
	const (
		beg = domain.LevelBeginner
		mid = domain.LevelIntermediate
	)
	return []domain.WorkoutTemplate{
		// Home / beginner / lose weight: full week.
		tpl("home_beginner_lose_weight_0", "Кардио + Күш жаттығулары", beg, domain.WorkoutHome, domain.GoalLoseWeight, 0,
			ex("Жылу жаттығуы", 1, "5 мин"), ex("Джампинг джек", 3, "30 сек"),
			ex("Отжимания", 3, "10"), ex("Приседания", 3, "15"), ex("Планка", 3, "30 сек")),
		tpl("home_beginner_lose_weight_1", "Кардио табата", beg, domain.WorkoutHome, domain.GoalLoseWeight, 1,
			ex("Табата раунд", 4, "20сек жұмыс/10сек дем"), ex("Джампинг джек", 3, "30"),
			ex("Скалолаз", 3, "20"), ex("Созылу", 1, "5 мин")),
		tpl("home_beginner_lose_weight_2", "Аяқ + Кардио", beg, domain.WorkoutHome, domain.GoalLoseWeight, 2,
			ex("Жылу жаттығуы", 1, "5 мин"), ex("Приседания", 4, "15"),
			ex("Выпады", 3, "10 әр аяққа"), ex("Көпір", 3, "15"), ex("Бег на орнында", 3, "1 мин")),
		tpl("home_beginner_lose_weight_3", "Күш + тонус", beg, domain.WorkoutHome, domain.GoalLoseWeight, 3,
			ex("Отжимания", 3, "10"), ex("Приседания", 3, "15"),
			ex("Планка", 3, "30 сек"), ex("Выпады", 3, "10")),
		tpl("home_beginner_lose_weight_4", "Интенсивті кардио", beg, domain.WorkoutHome, domain.GoalLoseWeight, 4,
			ex("Берпи", 3, "8"), ex("Жоғары тізелер", 3, "30 сек"),
			ex("Скалолаз", 3, "20"), ex("Скакалка", 3, "1 мин"), ex("Созылу", 1, "5 мин")),
		tpl("home_beginner_lose_weight_5", "Актив демалыс", beg, domain.WorkoutHome, domain.GoalLoseWeight, 5,
			ex("Жаяу серуен", 1, "20 мин"), ex("Созылу", 1, "15 мин"), ex("Тыныс алу", 1, "5 мин")),
		tpl("home_beginner_lose_weight_6", "Жеңіл кардио + Созылу", beg, domain.WorkoutHome, domain.GoalLoseWeight, 6,
			ex("Жаяу жүру", 1, "15 мин"), ex("Йога позалары", 1, "10 мин"), ex("Созылу жаттығулары", 1, "10 мин")),

		// Home / beginner / gain muscle.
		tpl("home_beginner_gain_muscle_0", "Кеуде + Трицепс", beg, domain.WorkoutHome, domain.GoalGainMuscle, 0,
			ex("Отжимания", 4, "12"), ex("Кең отжимания", 3, "10"),
			ex("Дип орындыққа", 3, "12"), ex("Планка", 3, "45 сек")),
		tpl("home_beginner_gain_muscle_1", "Қор + бел", beg, domain.WorkoutHome, domain.GoalGainMuscle, 1,
			ex("Планка", 4, "45 сек"), ex("Велосипед", 4, "20"),
			ex("Супермен", 3, "15"), ex("Бүйір планка", 3, "30 сек")),
		tpl("home_beginner_gain_muscle_2", "Аяқ күні", beg, domain.WorkoutHome, domain.GoalGainMuscle, 2,
			ex("Приседания", 4, "15"), ex("Выпады", 4, "12"),
			ex("Көпір", 4, "15"), ex("Балтыр көтеру", 3, "20")),
		tpl("home_beginner_gain_muscle_3", "Иық + қол", beg, domain.WorkoutHome, domain.GoalGainMuscle, 3,
			ex("Пайк отжимания", 3, "10"), ex("Дип орындыққа", 4, "12"),
			ex("Алмас отжимания", 3, "10"), ex("Планка", 3, "45 сек")),
		tpl("home_beginner_gain_muscle_4", "Толық дене", beg, domain.WorkoutHome, domain.GoalGainMuscle, 4,
			ex("Отжимания", 3, "12"), ex("Приседания", 3, "15"),
			ex("Выпады", 3, "10"), ex("Планка", 3, "1 мин")),
		tpl("home_beginner_gain_muscle_5", "Қалпына келу", beg, domain.WorkoutHome, domain.GoalGainMuscle, 5,
			ex("Жеңіл созылу", 1, "15 мин"), ex("Foam roller", 1, "10 мин"), ex("Йога", 1, "15 мин")),

		// Home / beginner / stay fit.
		tpl("home_beginner_stay_fit_0", "Таңғы заряд", beg, domain.WorkoutHome, domain.GoalStayFit, 0,
			ex("Жылу жаттығуы", 1, "5 мин"), ex("Отжимания", 2, "10"),
			ex("Приседания", 2, "15"), ex("Созылу", 1, "5 мин")),
		tpl("home_beginner_stay_fit_1", "Толық дене", beg, domain.WorkoutHome, domain.GoalStayFit, 1,
			ex("Отжимания", 2, "10"), ex("Приседания", 2, "12"),
			ex("Планка", 2, "30 сек"), ex("Выпады", 2, "8")),
		tpl("home_beginner_stay_fit_3", "Кардио микс", beg, domain.WorkoutHome, domain.GoalStayFit, 3,
			ex("Жаяу жүру", 1, "15 мин"), ex("Джампинг джек", 2, "20"), ex("Созылу", 1, "10 мин")),
		tpl("home_beginner_stay_fit_5", "Йога күн", beg, domain.WorkoutHome, domain.GoalStayFit, 5,
			ex("Йога позалары", 1, "20 мин"), ex("Медитация", 1, "10 мин")),

		// Gym / beginner.
		tpl("gym_beginner_lose_weight_0", "Кардио + тренажер", beg, domain.WorkoutGym, domain.GoalLoseWeight, 0,
			ex("Жүгіру доріжка", 1, "15 мин"), ex("Кроссовер", 3, "12"),
			ex("Приседания", 3, "15"), ex("Эллипс", 1, "10 мин")),
		tpl("gym_beginner_lose_weight_1", "Кардио марафон", beg, domain.WorkoutGym, domain.GoalLoseWeight, 1,
			ex("Жүгіру доріжка", 1, "15 мин"), ex("Эллипс", 1, "15 мин"), ex("Велотренажер", 1, "10 мин")),
		tpl("gym_beginner_lose_weight_3", "Круговая", beg, domain.WorkoutGym, domain.GoalLoseWeight, 3,
			ex("Кроссовер", 3, "12"), ex("Приседания", 3, "15"),
			ex("Тягалау", 3, "12"), ex("Кардио", 1, "10 мин")),
		tpl("gym_beginner_lose_weight_5", "Бассейн күні", beg, domain.WorkoutGym, domain.GoalLoseWeight, 5,
			ex("Жүзу", 1, "30 мин"), ex("Созылу", 1, "10 мин")),
		tpl("gym_beginner_gain_muscle_0", "Күш күні", beg, domain.WorkoutGym, domain.GoalGainMuscle, 0,
			ex("Жатып итеру", 3, "10"), ex("Тягалау", 3, "10"),
			ex("Иық пресс", 3, "10"), ex("Бицепс/Трицепс", 3, "10")),
		tpl("gym_beginner_gain_muscle_1", "Қор күні", beg, domain.WorkoutGym, domain.GoalGainMuscle, 1,
			ex("Кранч", 4, "15"), ex("Планка", 3, "45 сек"),
			ex("Гиперэкстензия", 3, "12"), ex("Бүйір бүгу", 3, "15")),
		tpl("gym_beginner_gain_muscle_3", "Қайталау күні", beg, domain.WorkoutGym, domain.GoalGainMuscle, 3,
			ex("Жатып итеру", 3, "10"), ex("Тягалау", 3, "10"),
			ex("Иық пресс", 3, "10"), ex("Бицепс/Трицепс", 3, "10")),
		tpl("gym_beginner_stay_fit_1", "Функционал", beg, domain.WorkoutGym, domain.GoalStayFit, 1,
			ex("TRX жаттығулар", 3, "10"), ex("Медбол", 3, "12"), ex("Кардио", 1, "15 мин")),
		tpl("gym_beginner_stay_fit_3", "Күш + кардио", beg, domain.WorkoutGym, domain.GoalStayFit, 3,
			ex("Жатып итеру", 2, "10"), ex("Тягалау", 2, "10"), ex("Эллипс", 1, "15 мин")),

		// Intermediate.
		tpl("home_intermediate_lose_weight_1", "Табата интенсив", mid, domain.WorkoutHome, domain.GoalLoseWeight, 1,
			ex("Табата раунд 1", 8, "20/10"), ex("Демалыс", 1, "1 мин"), ex("Табата раунд 2", 8, "20/10")),
		tpl("home_intermediate_lose_weight_3", "HIIT толық дене", mid, domain.WorkoutHome, domain.GoalLoseWeight, 3,
			ex("Берпи", 4, "12"), ex("Скалолаз", 4, "30"),
			ex("Джамп приседания", 4, "15"), ex("Планка", 3, "1 мин")),
		tpl("gym_intermediate_gain_muscle_0", "Кеуде + трицепс", mid, domain.WorkoutGym, domain.GoalGainMuscle, 0,
			ex("Жатып итеру", 4, "8"), ex("Гантель итеру", 4, "10"),
			ex("Кроссовер", 3, "12"), ex("Француз итеру", 3, "10")),
		tpl("gym_intermediate_gain_muscle_2", "Арқа + бицепс", mid, domain.WorkoutGym, domain.GoalGainMuscle, 2,
			ex("Тартылу", 4, "8"), ex("Штанга тарту", 4, "10"),
			ex("Гантель тарту", 3, "10"), ex("Бицепс бүгу", 3, "12")),
		tpl("gym_intermediate_gain_muscle_4", "Аяқ + иық", mid, domain.WorkoutGym, domain.GoalGainMuscle, 4,
			ex("Штанга приседания", 4, "10"), ex("Аяқ пресс", 4, "12"),
			ex("Иық пресс", 4, "10"), ex("Махи гантель", 3, "12")),
	}
}
