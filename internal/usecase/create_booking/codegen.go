package create_booking

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/m04kA/TT-ReservationService/internal/domain"
)

// generateConfirmationCode собирает код подтверждения вида TT-YYYYMMDD-NNNN.
// Уникальность по построению не гарантируется (~1 из 10000 в день),
// backstop - уникальный индекс в хранилище.
func generateConfirmationCode(now time.Time, randInt func(n int) int) string {
	return fmt.Sprintf("%s-%s-%04d",
		domain.ConfirmationCodePrefix,
		now.Format(domain.ConfirmationCodeDatePart),
		randInt(10000),
	)
}

// generateGuestNIC генерирует синтетический NIC-плейсхолдер для гостевого
// профиля: AUTO + 8 hex символов. Схема требует уникальный NIC даже для
// гостевых бронирований.
func generateGuestNIC() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%w: failed to generate guest NIC: %v", ErrInternal, err)
	}
	return domain.GuestNICPrefix + hex.EncodeToString(buf), nil
}
