// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "math/rand/v2"

var adjectives = []string{
	"용감한", "졸린", "배고픈", "신나는", "수줍은", "똑똑한", "느긋한", "재빠른",
	"행복한", "엉뚱한", "씩씩한", "조용한", "반짝이는", "꼼꼼한", "호기심많은", "명랑한",
}

var animals = []string{
	"수달", "고양이", "펭귄", "다람쥐", "부엉이", "코알라", "판다", "여우",
	"거북이", "고래", "햄스터", "너구리", "돌고래", "토끼", "알파카", "고슴도치",
}

// Nickname returns a random two-word nickname: adjective and animal
func Nickname() string {
	return adjectives[rand.IntN(len(adjectives))] + " " + animals[rand.IntN(len(animals))]
}

func nicknameOtherThan(previous string) string {
	nickname := Nickname()
	for i := 0; i < 8 && nickname == previous; i++ {
		nickname = Nickname()
	}
	return nickname
}
