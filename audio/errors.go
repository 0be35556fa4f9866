package audio

import (
	"errors"
	"fmt"
)

var ErrUnknownSound = errors.New("audio: unknown sound")

func errUnknownSound(id string) error {
	return fmt.Errorf("%w: %q", ErrUnknownSound, id)
}
