// Package ingest reads Steam session cookies from files and strings.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
)

var ErrEmptyCookieFile = errors.New("cookie file contains no cookies")

const netscapeHeader = "# Netscape HTTP Cookie File"

// ParseCookieString splits a "name=value; name2=value2" header into a map.
// Values are URL-unescaped; segments without '=' are skipped.
func ParseCookieString(s string) map[string]string {
	cookies := map[string]string{}
	for _, part := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if unescaped, err := url.PathUnescape(strings.TrimSpace(value)); err == nil {
			value = unescaped
		}
		cookies[name] = strings.TrimSpace(value)
	}
	return cookies
}

// ReadCookieFile loads a Netscape-format export or a plain cookie string and
// returns it as a single "name=value; ..." header.
func ReadCookieFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open cookie file: %w", err)
	}
	defer f.Close()

	header, err := ReadCookies(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return header, nil
}

// ReadCookies is ReadCookieFile over an arbitrary reader.
func ReadCookies(r io.Reader) (string, error) {
	data, err := io.ReadAll(stripBOM(r))
	if err != nil {
		return "", err
	}
	content := string(data)

	var header string
	if strings.HasPrefix(strings.TrimSpace(content), netscapeHeader) || strings.Contains(content, "\t") {
		header = netscapeCookies(content)
	} else {
		header = strings.TrimSpace(content)
	}
	if header == "" {
		return "", ErrEmptyCookieFile
	}
	return header, nil
}

func netscapeCookies(content string) string {
	var pairs []string
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#HttpOnly_") {
			line = strings.TrimPrefix(line, "#HttpOnly_")
		} else if strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}
		pairs = append(pairs, fields[5]+"="+fields[6])
	}
	return strings.Join(pairs, "; ")
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
