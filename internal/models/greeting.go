package models

import "github.com/julianstephens/norton/internal/constants"

// Greeting is the header shown above the planner.
type Greeting struct {
	Emoji string `json:"emoji"`
	Text  string `json:"text"`
}

func DefaultGreeting() Greeting {
	return Greeting{
		Emoji: constants.DefaultGreetingEmoji,
		Text:  constants.DefaultGreetingText,
	}
}
