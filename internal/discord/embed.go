package discord

import (
	"time"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

// Platform limits for a single embed, counted in characters.
const (
	MaxTitleLength       = 256
	MaxDescriptionLength = 4096
	MaxFields            = 25
	MaxFieldNameLength   = 256
	MaxFieldValueLength  = 1024
	MaxFooterLength      = 2048
	MaxAuthorLength      = 256
	MaxEmbedTotalLength  = 6000
)

const ellipsis = "…"

// Field is a name/value pair rendered inside an embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// Embed is a transport independent rich message.
type Embed struct {
	Title        string    `json:"title,omitempty"`
	Description  string    `json:"description,omitempty"`
	URL          string    `json:"url,omitempty"`
	Color        int       `json:"color,omitempty"`
	Author       string    `json:"author,omitempty"`
	Footer       string    `json:"footer,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Timestamp    time.Time `json:"timestamp,omitempty"`
	Fields       []Field   `json:"fields,omitempty"`
}

// Empty reports whether the embed has nothing the platform would render.
func (e Embed) Empty() bool {
	return e.Title == "" && e.Description == "" && len(e.Fields) == 0 && e.ImageURL == ""
}

// Length counts the characters the platform applies the total limit to.
func (e Embed) Length() int {
	n := utf8.RuneCountInString(e.Title) +
		utf8.RuneCountInString(e.Description) +
		utf8.RuneCountInString(e.Author) +
		utf8.RuneCountInString(e.Footer)
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	return n
}

// Normalize returns a copy of e that fits every platform limit.
// Fields with an empty name or value are dropped because the API rejects them.
// When the total is still too long the description shrinks first, then
// trailing fields are removed.
func Normalize(e Embed) Embed {
	out := e
	out.Title = truncate(e.Title, MaxTitleLength)
	out.Description = truncate(e.Description, MaxDescriptionLength)
	out.Author = truncate(e.Author, MaxAuthorLength)
	out.Footer = truncate(e.Footer, MaxFooterLength)

	out.Fields = make([]Field, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Name == "" || f.Value == "" {
			continue
		}
		if len(out.Fields) == MaxFields {
			break
		}
		out.Fields = append(out.Fields, Field{
			Name:   truncate(f.Name, MaxFieldNameLength),
			Value:  truncate(f.Value, MaxFieldValueLength),
			Inline: f.Inline,
		})
	}

	if over := out.Length() - MaxEmbedTotalLength; over > 0 {
		descLen := utf8.RuneCountInString(out.Description)
		keep := descLen - over
		if keep < 0 {
			keep = 0
		}
		out.Description = truncate(out.Description, keep)
	}
	for out.Length() > MaxEmbedTotalLength && len(out.Fields) > 0 {
		out.Fields = out.Fields[:len(out.Fields)-1]
	}
	return out
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	return string(runes[:max-1]) + ellipsis
}

func (e Embed) toMessageEmbed() *discordgo.MessageEmbed {
	me := &discordgo.MessageEmbed{
		Type:        discordgo.EmbedTypeRich,
		Title:       e.Title,
		Description: e.Description,
		URL:         e.URL,
		Color:       e.Color,
	}
	if !e.Timestamp.IsZero() {
		me.Timestamp = e.Timestamp.UTC().Format(time.RFC3339)
	}
	if e.Author != "" {
		me.Author = &discordgo.MessageEmbedAuthor{Name: e.Author}
	}
	if e.Footer != "" {
		me.Footer = &discordgo.MessageEmbedFooter{Text: e.Footer}
	}
	if e.ImageURL != "" {
		me.Image = &discordgo.MessageEmbedImage{URL: e.ImageURL}
	}
	if e.ThumbnailURL != "" {
		me.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: e.ThumbnailURL}
	}
	for _, f := range e.Fields {
		me.Fields = append(me.Fields, &discordgo.MessageEmbedField{Name: f.Name, Value: f.Value, Inline: f.Inline})
	}
	return me
}
