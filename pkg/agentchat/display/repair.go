// Copyright 2026 Benoit Pereira da Silva
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package display

import (
	"regexp"
	"strings"
)

// contractionWords is the allow-list of contractions whose trailing
// apostrophe some upstream models mangle into a bare backslash before
// whitespace or end of string ("I didn\ know" for "I didn't know").
//
// This is a workaround for one observed failure mode, not general backslash
// un-escaping: extend the list only with evidence of a new pattern in the
// wild. Unmatched backslashes pass through untouched.
var contractionWords = []string{"didn", "don", "isn", "wasn", "haven"}

type contractionRepair struct {
	pattern     *regexp.Regexp
	replacement string
}

var contractionRepairs = func() []contractionRepair {
	repairs := make([]contractionRepair, 0, len(contractionWords))
	for _, word := range contractionWords {
		repairs = append(repairs, contractionRepair{
			pattern:     regexp.MustCompile(`([A-Za-z])\s?` + word + `\\(\s|$)`),
			replacement: "${1} " + word + "'t${2}",
		})
	}
	return repairs
}()

// Repair normalizes the known corrupted escape sequences an answer may carry:
// literal \n to line breaks, literal \" and \' to plain quotes, the
// contraction allow-list above, and literal \t to four spaces.
func Repair(raw string) string {
	repaired := strings.ReplaceAll(raw, `\n`, "\n")
	repaired = strings.ReplaceAll(repaired, `\"`, `"`)
	repaired = strings.ReplaceAll(repaired, `\'`, "'")
	for _, r := range contractionRepairs {
		repaired = r.pattern.ReplaceAllString(repaired, r.replacement)
	}
	return strings.ReplaceAll(repaired, `\t`, "    ")
}
