package minwage

import "strings"

// Prefecture is the official Japanese name of a prefecture (e.g. "東京都").
// Minimum wages are set per prefecture, so it identifies a wage record.
type Prefecture string

// The 47 prefectures in JIS X 0401 order.
const (
	Hokkaido  Prefecture = "北海道"
	Aomori    Prefecture = "青森県"
	Iwate     Prefecture = "岩手県"
	Miyagi    Prefecture = "宮城県"
	Akita     Prefecture = "秋田県"
	Yamagata  Prefecture = "山形県"
	Fukushima Prefecture = "福島県"
	Ibaraki   Prefecture = "茨城県"
	Tochigi   Prefecture = "栃木県"
	Gunma     Prefecture = "群馬県"
	Saitama   Prefecture = "埼玉県"
	Chiba     Prefecture = "千葉県"
	Tokyo     Prefecture = "東京都"
	Kanagawa  Prefecture = "神奈川県"
	Niigata   Prefecture = "新潟県"
	Toyama    Prefecture = "富山県"
	Ishikawa  Prefecture = "石川県"
	Fukui     Prefecture = "福井県"
	Yamanashi Prefecture = "山梨県"
	Nagano    Prefecture = "長野県"
	Gifu      Prefecture = "岐阜県"
	Shizuoka  Prefecture = "静岡県"
	Aichi     Prefecture = "愛知県"
	Mie       Prefecture = "三重県"
	Shiga     Prefecture = "滋賀県"
	Kyoto     Prefecture = "京都府"
	Osaka     Prefecture = "大阪府"
	Hyogo     Prefecture = "兵庫県"
	Nara      Prefecture = "奈良県"
	Wakayama  Prefecture = "和歌山県"
	Tottori   Prefecture = "鳥取県"
	Shimane   Prefecture = "島根県"
	Okayama   Prefecture = "岡山県"
	Hiroshima Prefecture = "広島県"
	Yamaguchi Prefecture = "山口県"
	Tokushima Prefecture = "徳島県"
	Kagawa    Prefecture = "香川県"
	Ehime     Prefecture = "愛媛県"
	Kochi     Prefecture = "高知県"
	Fukuoka   Prefecture = "福岡県"
	Saga      Prefecture = "佐賀県"
	Nagasaki  Prefecture = "長崎県"
	Kumamoto  Prefecture = "熊本県"
	Oita      Prefecture = "大分県"
	Miyazaki  Prefecture = "宮崎県"
	Kagoshima Prefecture = "鹿児島県"
	Okinawa   Prefecture = "沖縄県"
)

var allPrefectures = [...]Prefecture{
	Hokkaido, Aomori, Iwate, Miyagi, Akita, Yamagata, Fukushima,
	Ibaraki, Tochigi, Gunma, Saitama, Chiba, Tokyo, Kanagawa,
	Niigata, Toyama, Ishikawa, Fukui, Yamanashi, Nagano, Gifu,
	Shizuoka, Aichi, Mie, Shiga, Kyoto, Osaka, Hyogo, Nara, Wakayama,
	Tottori, Shimane, Okayama, Hiroshima, Yamaguchi,
	Tokushima, Kagawa, Ehime, Kochi,
	Fukuoka, Saga, Nagasaki, Kumamoto, Oita, Miyazaki, Kagoshima, Okinawa,
}

// prefectureCodes maps both the full and the short name to the JIS code.
var prefectureCodes = func() map[string]int {
	m := make(map[string]int, 2*len(allPrefectures))
	for i, p := range allPrefectures {
		m[string(p)] = i + 1
		m[p.ShortName()] = i + 1
	}
	return m
}()

// Prefectures returns all 47 prefectures in JIS code order.
func Prefectures() []Prefecture {
	out := make([]Prefecture, len(allPrefectures))
	copy(out, allPrefectures[:])
	return out
}

// ParsePrefecture resolves a full ("東京都") or short ("東京") name.
func ParsePrefecture(s string) (Prefecture, bool) {
	code, ok := prefectureCodes[strings.TrimSpace(s)]
	if !ok {
		return "", false
	}
	return allPrefectures[code-1], true
}

// Code returns the JIS X 0401 code (1-47), or 0 for an unknown name.
func (p Prefecture) Code() int {
	if !p.Valid() {
		return 0
	}
	return prefectureCodes[string(p)]
}

// Valid reports whether p is one of the 47 official full names.
func (p Prefecture) Valid() bool {
	code, ok := prefectureCodes[string(p)]
	return ok && allPrefectures[code-1] == p
}

// ShortName returns the name without its 都/道/府/県 suffix.
// 北海道 is returned unchanged.
func (p Prefecture) ShortName() string {
	s := string(p)
	if p == Hokkaido {
		return s
	}
	for _, suffix := range []string{"都", "府", "県"} {
		if trimmed, ok := strings.CutSuffix(s, suffix); ok {
			return trimmed
		}
	}
	return s
}

func (p Prefecture) String() string { return string(p) }
