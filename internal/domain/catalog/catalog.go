// Package catalog holds the static chapter table: which chapters exist per
// academic group and subject, and where each chapter's questions live.
package catalog

import "sort"

// SourceKind says where a chapter's question set can be loaded from. The
// three cases are closed so the loader can branch exhaustively instead of
// comparing sentinel strings.
type SourceKind int

const (
	// SourceRemoteJSON is a fetchable URL returning a JSON array of raw records.
	SourceRemoteJSON SourceKind = iota
	// SourceRecordsStore means the questions were imported into the records store.
	SourceRecordsStore
	// SourceComingSoon marks a chapter that is announced but not yet published.
	SourceComingSoon
)

// Chapter is one entry of the catalog. URL is set only for SourceRemoteJSON.
type Chapter struct {
	Name   string
	Source SourceKind
	URL    string
}

func Remote(name, url string) Chapter {
	return Chapter{Name: name, Source: SourceRemoteJSON, URL: url}
}

func Stored(name string) Chapter {
	return Chapter{Name: name, Source: SourceRecordsStore}
}

func ComingSoon(name string) Chapter {
	return Chapter{Name: name, Source: SourceComingSoon}
}

// groupOrder keeps listing output stable; map iteration order is not.
var groupOrder = []string{"ssc", "hsc", "admission"}

var subjectChapters = map[string]map[string][]Chapter{
	"ssc": {
		"bangla": {
			Stored("বাংলা ১ম পত্র অধ্যায় ১"),
			ComingSoon("বাংলা ১ম পত্র অধ্যায় ২"),
		},
		"english": {
			ComingSoon("English 1st Paper Chapter 1"),
		},
		"math": {
			ComingSoon("সাধারণ গণিত অধ্যায় ১"),
		},
		"physics": {
			ComingSoon("পদার্থ ১ম পত্র অধ্যায় ৩"),
			ComingSoon("পদার্থ ১ম পত্র অধ্যায় ৪"),
		},
	},
	"hsc": {
		"bangla": {
			Stored("বাংলা ১ম পত্র গদ্য : অপরিচিতা"),
			Stored("বাংলা ১ম পত্র গদ্য : বিলাসী"),
			Stored("বাংলা ১ম পত্র পদ্য : ঋতু বর্ণন"),
		},
		"english": {
			Remote("English 2nd Paper : Changing Sentence", "https://raw.githubusercontent.com/kafaahbd/nothing/refs/heads/main/hsc_english_2nd_paper_changing.json"),
			Remote("English 2nd Paper : Right Form Of Verb", "https://raw.githubusercontent.com/kafaahbd/nothing/refs/heads/main/hsc_english_2nd_paper_rightformofverb.json"),
		},
		"ict": {
			Remote("ICT অধ্যায় ৫", "https://raw.githubusercontent.com/kafaahbd/Question/refs/heads/main/ict_hsc_5.json"),
		},
		"physics": {
			Remote("পদার্থ ১ম পত্র অধ্যায় ৩", "https://raw.githubusercontent.com/kafaahbd/nothing/refs/heads/main/hsc_physcis_chapter_3_1st_paper.json"),
			Remote("পদার্থ ১ম পত্র অধ্যায় ৪", "https://raw.githubusercontent.com/kafaahbd/nothing/refs/heads/main/hsc_physcis_chapter_4_1st_paper.json"),
		},
		"chemistry": {
			Remote("রসায়ন ১ম পত্র অধ্যায় ২", "https://raw.githubusercontent.com/kafaahbd/nothing/refs/heads/main/hsc_chemistry_chapter_2_1st_paper.json"),
		},
		"biology": {
			Remote("জীববিজ্ঞান ১ম পত্র অধ্যায় ১", "https://raw.githubusercontent.com/kafaahbd/nothing/refs/heads/main/hsc_biology_chapter_1_1st_paper.json"),
			Remote("জীববিজ্ঞান ১ম পত্র অধ্যায় ৩", "https://raw.githubusercontent.com/kafaahbd/Question/refs/heads/main/Botany-3.json"),
		},
		"highermath": {
			Remote("উচ্চতর গণিত ১ম পত্র অধ্যায় ৭", "https://raw.githubusercontent.com/kafaahbd/Question/refs/heads/main/trigonometry_hsc_7.json"),
		},
	},
	"admission": {
		"engineering-highermath": {
			Remote("উচ্চতর গণিত (ইঞ্জিনিয়ারিং) অধ্যায় ৭", "https://raw.githubusercontent.com/kafaahbd/Question/refs/heads/main/engineering_hm_7.json"),
		},
	},
}

// Groups lists the academic groups in display order.
func Groups() []string {
	groups := make([]string, 0, len(groupOrder))
	for _, g := range groupOrder {
		if _, ok := subjectChapters[g]; ok {
			groups = append(groups, g)
		}
	}
	return groups
}

// Subjects lists the subject IDs available in a group.
func Subjects(group string) ([]string, bool) {
	subjects, ok := subjectChapters[group]
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(subjects))
	for name := range subjects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, true
}

// Chapters lists the chapters of one subject in one group.
func Chapters(group, subjectID string) ([]Chapter, bool) {
	subjects, ok := subjectChapters[group]
	if !ok {
		return nil, false
	}
	chapters, ok := subjects[subjectID]
	return chapters, ok
}

// Find looks a chapter up by name within a group and subject.
func Find(group, subjectID, name string) (Chapter, bool) {
	chapters, ok := Chapters(group, subjectID)
	if !ok {
		return Chapter{}, false
	}
	for _, ch := range chapters {
		if ch.Name == name {
			return ch, true
		}
	}
	return Chapter{}, false
}
