package cli

import (
	"fmt"

	"github.com/thermwatch/thermwatch/internal/prefs"
)

// configGetCommand prints one preference value.
func configGetCommand(key string) error {
	store, err := prefs.LoadDefault()
	if err != nil {
		return err
	}
	value, err := store.Get(key)
	if err != nil {
		return err
	}
	fmt.Println(value)
	return nil
}

// configSetCommand changes and persists one preference value.
func configSetCommand(key, value string) error {
	store, err := prefs.LoadDefault()
	if err != nil {
		return err
	}
	if err := store.Set(key, value); err != nil {
		return err
	}
	fmt.Printf("✓ %s = %s\n", key, value)
	return nil
}
