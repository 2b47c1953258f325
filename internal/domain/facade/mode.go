package facade

import "fmt"

type RuntimeMode string

const (
	Online       RuntimeMode = "online"
	OfflineAdmin RuntimeMode = "offline-admin"
	OfflineDemo  RuntimeMode = "offline-demo"
)

func ParseRuntimeMode(s string) (RuntimeMode, error) {
	switch mode := RuntimeMode(s); mode {
	case Online, OfflineAdmin, OfflineDemo:
		return mode, nil
	case "":
		return Online, nil
	default:
		return "", fmt.Errorf("unknown runtime mode %q", s)
	}
}

func (m RuntimeMode) IsOffline() bool {
	return m != Online
}
