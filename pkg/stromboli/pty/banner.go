package pty

import (
	"encoding/binary"
	"fmt"
	"runtime"
	"strconv"
	"strings"
)

// SystemBanner renders the retro system status banner printed into a
// fresh terminal session.
func SystemBanner(sessionID string) string {
	endian := "LITTLE-ENDIAN"
	if binary.NativeEndian.Uint16([]byte{0x12, 0x34}) == 0x1234 {
		endian = "BIG-ENDIAN"
	}

	pointerSize := "32-BIT"
	if strconv.IntSize == 64 {
		pointerSize = "64-BIT"
	}

	sessionHex := sessionID
	if len(sessionHex) > 6 {
		sessionHex = sessionHex[:6]
	}

	return fmt.Sprintf(`
╔══════════════════════════════════════════════════════════════╗
║  H Y P H A E I C   T E R M I N A L   S Y S T E M             ║
║══════════════════════════════════════════════════════════════║
║                                                              ║
║  SYSTEM DIAGNOSTICS COMPLETE                                 ║
║══════════════════════════════════════════════════════════════║
║  ENDIAN CHECK........... %-16s [OK]               ║
║  POINTER SIZE........... %-16s [OK]               ║
║  CPU ARCH............... %-16s [OK]               ║
║  TARGET OS.............. %-16s [OK]               ║
║  PTY SESSION............ %-16s [ACTIVE]           ║
╚══════════════════════════════════════════════════════════════╝

`,
		endian,
		pointerSize,
		runtime.GOARCH,
		runtime.GOOS,
		"0x"+strings.ToUpper(sessionHex),
	)
}
