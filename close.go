package henkan

// Close releases every loaded optional dictionary. The engine stays usable;
// mandatory dictionaries are plain heap values and need no cleanup.
func (e *Engine) Close() error {
	if e == nil {
		return nil
	}
	for _, d := range OptionalDictionaries() {
		e.Release(d)
	}
	return nil
}
