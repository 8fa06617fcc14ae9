package get_available_slots

import (
	"github.com/Nimixx/Call-Scheduler-sub000/internal/domain"
	"github.com/Nimixx/Call-Scheduler-sub000/pkg/types"
)

// generateSlotCandidates генерирует слоты рабочего окна.
//
// Вся арифметика идет в секундах от начала дня. Для ночных окон (конец <=
// начало, например 22:00-02:00) конец переносится на следующие сутки, поэтому
// курсор может уйти за 86400 - время слота при этом нормализуется по модулю
// суток ("25:00" становится "01:00"). Окно с совпадающими началом и концом
// трактуется как круглосуточное.
//
// Слот попадает в результат, только если целиком (вместе с длительностью)
// помещается в окно. Шаг курсора - длительность плюс буфер.
func generateSlotCandidates(window *domain.AvailabilityWindow, cfg domain.SchedulingConfig) []domain.SlotCandidate {
	startSec, err := window.StartTime.SecondsOfDay()
	if err != nil {
		return []domain.SlotCandidate{}
	}

	effectiveEnd, err := window.EffectiveEndSeconds()
	if err != nil {
		return []domain.SlotCandidate{}
	}

	duration := cfg.SlotDurationSeconds()
	step := cfg.StepSeconds()

	candidates := make([]domain.SlotCandidate, 0)
	for cursor := startSec; cursor+duration <= effectiveEnd; cursor += step {
		candidates = append(candidates, domain.SlotCandidate{
			Start:     types.NewTimeStringFromSeconds(cursor),
			End:       types.NewTimeStringFromSeconds(cursor + duration),
			Available: true,
		})
	}

	return candidates
}

// markBlockedSlots помечает занятыми слоты, начало которых совпадает с
// временем активного бронирования. Сравнение идет по секундам от начала дня,
// чтобы "09:00" и "09:00:00" считались одним временем.
func markBlockedSlots(candidates []domain.SlotCandidate, blocked []types.TimeString) {
	if len(blocked) == 0 {
		return
	}

	blockedSet := make(map[int]struct{}, len(blocked))
	for _, t := range blocked {
		sec, err := t.SecondsOfDay()
		if err != nil {
			continue
		}
		blockedSet[sec] = struct{}{}
	}

	for i := range candidates {
		sec, err := candidates[i].Start.SecondsOfDay()
		if err != nil {
			continue
		}
		if _, ok := blockedSet[sec]; ok {
			candidates[i].Available = false
		}
	}
}
