package entity

import "unicode/utf8"

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	StatusCreated   ArticleStatus = "CREATED"
	StatusPublished ArticleStatus = "PUBLISHED"
	StatusArchived  ArticleStatus = "ARCHIVED"
)

// maxTitleLength caps article titles.
const maxTitleLength = 200

// defaultCategory is assigned to freshly created articles.
const defaultCategory = 1

// Article is the magazine article aggregate. Its publication lifecycle runs
// CREATED → PUBLISHED → ARCHIVED, with unpublish and unarchive both returning
// to CREATED. Author, editor and source freeze once the article is published;
// the task and author nick freeze as soon as the status leaves CREATED.
// Image slots are independent of status and always writable.
type Article struct {
	id          int64
	title       string
	description string
	text        string
	keywords    string

	squareImage          string
	horizontalLargeImage string
	horizontalSmallImage string
	verticalLargeImage   string
	verticalSmallImage   string
	extraLargeImage      string // cover; empty when unset

	category     int64
	author       *int64
	editor       int64
	task         *int64
	source       string
	nick         string
	photographer string
	status       ArticleStatus
}

// ArticleState is the full field snapshot used by the article factory to
// rehydrate and serialize articles. It carries no behavior.
type ArticleState struct {
	ID                   int64
	Title                string
	Description          string
	Text                 string
	Keywords             string
	SquareImage          string
	HorizontalLargeImage string
	HorizontalSmallImage string
	VerticalLargeImage   string
	VerticalSmallImage   string
	ExtraLargeImage      string
	Category             int64
	Author               *int64
	Editor               int64
	Task                 *int64
	Source               string
	Nick                 string
	Photographer         string
	Status               ArticleStatus
}

// NewArticle returns a draft article in CREATED state with the default title
// and category.
func NewArticle(author *int64, editor int64, task *int64) *Article {
	return RestoreArticle(ArticleState{
		Title:    "Untitled article",
		Category: defaultCategory,
		Author:   author,
		Editor:   editor,
		Task:     task,
		Status:   StatusCreated,
	})
}

// RestoreArticle rehydrates an article from a snapshot without running
// invariant checks. Only factories should call it.
func RestoreArticle(s ArticleState) *Article {
	return &Article{
		id:                   s.ID,
		title:                s.Title,
		description:          s.Description,
		text:                 s.Text,
		keywords:             s.Keywords,
		squareImage:          s.SquareImage,
		horizontalLargeImage: s.HorizontalLargeImage,
		horizontalSmallImage: s.HorizontalSmallImage,
		verticalLargeImage:   s.VerticalLargeImage,
		verticalSmallImage:   s.VerticalSmallImage,
		extraLargeImage:      s.ExtraLargeImage,
		category:             s.Category,
		author:               s.Author,
		editor:               s.Editor,
		task:                 s.Task,
		source:               s.Source,
		nick:                 s.Nick,
		photographer:         s.Photographer,
		status:               s.Status,
	}
}

// State returns a snapshot of the article for serialization.
func (a *Article) State() ArticleState {
	return ArticleState{
		ID:                   a.id,
		Title:                a.title,
		Description:          a.description,
		Text:                 a.text,
		Keywords:             a.keywords,
		SquareImage:          a.squareImage,
		HorizontalLargeImage: a.horizontalLargeImage,
		HorizontalSmallImage: a.horizontalSmallImage,
		VerticalLargeImage:   a.verticalLargeImage,
		VerticalSmallImage:   a.verticalSmallImage,
		ExtraLargeImage:      a.extraLargeImage,
		Category:             a.category,
		Author:               a.author,
		Editor:               a.editor,
		Task:                 a.task,
		Source:               a.source,
		Nick:                 a.nick,
		Photographer:         a.photographer,
		Status:               a.status,
	}
}

func (a *Article) ID() int64             { return a.id }
func (a *Article) Title() string         { return a.title }
func (a *Article) Description() string   { return a.description }
func (a *Article) Text() string          { return a.text }
func (a *Article) Keywords() string      { return a.keywords }
func (a *Article) Category() int64       { return a.category }
func (a *Article) Author() *int64        { return a.author }
func (a *Article) Editor() int64         { return a.editor }
func (a *Article) Task() *int64          { return a.task }
func (a *Article) Source() string        { return a.source }
func (a *Article) Nick() string          { return a.nick }
func (a *Article) Photographer() string  { return a.photographer }
func (a *Article) Status() ArticleStatus { return a.status }
func (a *Article) Cover() string         { return a.extraLargeImage }

// IsPublished reports whether the article is currently published.
func (a *Article) IsPublished() bool { return a.status == StatusPublished }

// Publish moves the article to PUBLISHED.
func (a *Article) Publish() error {
	if a.status == StatusPublished {
		return Conflictf("article %d is already published", a.id)
	}
	a.status = StatusPublished
	return nil
}

// Unpublish returns the article to CREATED.
func (a *Article) Unpublish() error {
	if a.status == StatusCreated {
		return Conflictf("article %d is not published", a.id)
	}
	a.status = StatusCreated
	return nil
}

// Archive moves the article to ARCHIVED.
func (a *Article) Archive() error {
	if a.status == StatusArchived {
		return Conflictf("article %d is already archived", a.id)
	}
	a.status = StatusArchived
	return nil
}

// Unarchive returns the article to CREATED.
func (a *Article) Unarchive() error {
	if a.status == StatusCreated {
		return Conflictf("article %d is not archived", a.id)
	}
	a.status = StatusCreated
	return nil
}

// SetTitle changes the title. Titles longer than 200 characters are rejected
// before anything is assigned.
func (a *Article) SetTitle(title string) error {
	if utf8.RuneCountInString(title) > maxTitleLength {
		return Validationf("title exceeds %d characters", maxTitleLength)
	}
	a.title = title
	return nil
}

// SetAuthor changes the author. Frozen once published.
func (a *Article) SetAuthor(author *int64) error {
	if a.IsPublished() {
		return Forbiddenf("author of published article %d cannot change", a.id)
	}
	a.author = author
	return nil
}

// SetEditor changes the editor. Frozen once published.
func (a *Article) SetEditor(editor int64) error {
	if a.IsPublished() {
		return Forbiddenf("editor of published article %d cannot change", a.id)
	}
	a.editor = editor
	return nil
}

// SetSource changes the source attribution. Frozen once published; setting
// the current value is a no-op.
func (a *Article) SetSource(source string) error {
	if a.source == source {
		return nil
	}
	if a.IsPublished() {
		return Forbiddenf("source of published article %d cannot change", a.id)
	}
	a.source = source
	return nil
}

// SetTask links the article to a task. Frozen once the status leaves CREATED;
// setting the current value is a no-op.
func (a *Article) SetTask(task *int64) error {
	if int64PtrEqual(a.task, task) {
		return nil
	}
	if a.status != StatusCreated {
		return Forbiddenf("task of article %d cannot change after creation stage", a.id)
	}
	a.task = task
	return nil
}

// SetNick changes the author nick shown in print. Frozen once the status
// leaves CREATED; setting the current value is a no-op.
func (a *Article) SetNick(nick string) error {
	if a.nick == nick {
		return nil
	}
	if a.status != StatusCreated {
		return Forbiddenf("nick of article %d cannot change after creation stage", a.id)
	}
	a.nick = nick
	return nil
}

// SetCategory changes the category. Not guarded by status.
func (a *Article) SetCategory(category int64) { a.category = category }

// SetPhotographer changes the photographer credit.
func (a *Article) SetPhotographer(photographer string) { a.photographer = photographer }

// SetKeywords changes the keyword list.
func (a *Article) SetKeywords(keywords string) { a.keywords = keywords }

// SetText changes the body text.
func (a *Article) SetText(text string) { a.text = text }

// SetDescription changes the short description.
func (a *Article) SetDescription(description string) { a.description = description }

// SetImages fills the five layout image slots. Image slots are independent of
// publication status.
func (a *Article) SetImages(square, horizontalLarge, horizontalSmall, verticalLarge, verticalSmall string) {
	a.squareImage = square
	a.horizontalLargeImage = horizontalLarge
	a.horizontalSmallImage = horizontalSmall
	a.verticalLargeImage = verticalLarge
	a.verticalSmallImage = verticalSmall
}

// SetCover sets the extra-large cover image.
func (a *Article) SetCover(cover string) { a.extraLargeImage = cover }

// RemoveCover clears the cover image.
func (a *Article) RemoveCover() { a.extraLargeImage = "" }

func int64PtrEqual(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
