package core

// utoa converts an unsigned integer to a string
func utoa(n uint32) string {
	return utoa64(uint64(n))
}

// utoa64 converts a 64-bit unsigned integer to a string
func utoa64(n uint64) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}

// byteName renders a command byte for debug output: printable ASCII as is,
// anything else as 0xNN
func byteName(b byte) string {
	if b >= 32 && b <= 126 {
		return string([]byte{b})
	}
	const hex = "0123456789ABCDEF"
	return "0x" + string([]byte{hex[b>>4], hex[b&0xF]})
}
