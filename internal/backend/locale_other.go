//go:build !windows

package backend

import (
	"os"
	"strconv"
	"strings"
)

var localeVars = []string{"LC_ALL", "LC_CTYPE", "LANG"}

// detectNarrow reads the codeset of the first non-empty locale variable.
func detectNarrow() string {
	for _, key := range localeVars {
		if v := os.Getenv(key); v != "" {
			return codesetOf(v)
		}
	}
	return UTF8
}

// codeset spellings common in locale names that the IANA index does not know.
// Keys are lower case with '-' and '_' removed.
var codesetAliases = map[string]string{
	"utf8":         UTF8,
	"eucjp":        "EUC-JP",
	"ujis":         "EUC-JP",
	"euckr":        "EUC-KR",
	"sjis":         "Shift_JIS",
	"gbk":          "GBK",
	"gb2312":       "GBK",
	"euccn":        "GBK",
	"gb18030":      "GB18030",
	"big5":         "Big5",
	"koi8r":        "KOI8-R",
	"koi8u":        "KOI8-U",
	"ansix3.41968": "US-ASCII",
	"usascii":      "US-ASCII",
}

// codesetOf extracts the codeset from a locale name such as
// "zh_CN.GB18030@euro". C, POSIX and names without a codeset mean UTF-8.
func codesetOf(locale string) string {
	if at := strings.IndexByte(locale, '@'); at >= 0 {
		locale = locale[:at]
	}
	dot := strings.IndexByte(locale, '.')
	if dot < 0 || dot == len(locale)-1 {
		return UTF8
	}
	cs := locale[dot+1:]
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(cs))
	if alias, ok := codesetAliases[key]; ok {
		return alias
	}
	// ISO8859-1, iso88591
	if part, ok := strings.CutPrefix(key, "iso8859"); ok {
		if n, err := strconv.Atoi(part); err == nil && n > 0 {
			return "ISO-8859-" + strconv.Itoa(n)
		}
	}
	// CP1251, cp932
	if part, ok := strings.CutPrefix(key, "cp"); ok {
		if n, err := strconv.ParseUint(part, 10, 32); err == nil {
			return codepageName(uint32(n))
		}
	}
	return cs
}
