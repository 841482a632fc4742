package engine

import stealth "github.com/anatolykoptev/go-stealth"

// Browser fingerprint helpers for outbound YouTube requests.

func ChromeHeaders() map[string]string { return stealth.ChromeHeaders() }
func RandomUserAgent() string          { return stealth.RandomUserAgent() }
