package repository

import (
	"magazine-backoffice/internal/domain/entity"
	"magazine-backoffice/internal/store"
)

// Registered type names. One collection file (or table partition) exists per
// name in the file and sqlite backends.
const (
	articleType      = "Articles"
	userType         = "Users"
	contactType      = "Contacts"
	twoFactorType    = "TwoFactorSecrets"
	verificationType = "VerifyRecords"
	taskType         = "Tasks"
	categoryType     = "Categories"
)

// RegisterFactories binds every entity factory to its type name. Called once
// at startup on a freshly constructed registry.
func RegisterFactories(reg *Registry) error {
	if err := RegisterFactory(reg, articleType, ArticleFactory()); err != nil {
		return err
	}
	if err := RegisterFactory(reg, userType, UserFactory()); err != nil {
		return err
	}
	if err := RegisterFactory(reg, contactType, ContactFactory()); err != nil {
		return err
	}
	if err := RegisterFactory(reg, twoFactorType, TwoFactorFactory()); err != nil {
		return err
	}
	if err := RegisterFactory(reg, verificationType, VerificationFactory()); err != nil {
		return err
	}
	if err := RegisterFactory(reg, taskType, TaskFactory()); err != nil {
		return err
	}
	return RegisterFactory(reg, categoryType, CategoryFactory())
}

// ArticleFactory maps article records. Optional fields (author, task, cover)
// are omitted from the record when unset so older collections without them
// rehydrate cleanly.
func ArticleFactory() Factory[entity.Article] {
	return Factory[entity.Article]{
		Restore: func(rec store.Record) (*entity.Article, error) {
			return entity.RestoreArticle(entity.ArticleState{
				ID:                   rec.ID(),
				Title:                rec.String("title"),
				Description:          rec.String("description"),
				Text:                 rec.String("text"),
				Keywords:             rec.String("keywords"),
				SquareImage:          rec.String("squareImage"),
				HorizontalLargeImage: rec.String("horizontalLargeImage"),
				HorizontalSmallImage: rec.String("horizontalSmallImage"),
				VerticalLargeImage:   rec.String("verticalLargeImage"),
				VerticalSmallImage:   rec.String("verticalSmallImage"),
				ExtraLargeImage:      rec.String("extraLargeImage"),
				Category:             rec.Int64("category"),
				Author:               rec.OptInt64("author"),
				Editor:               rec.Int64("editor"),
				Task:                 rec.OptInt64("task"),
				Source:               rec.String("source"),
				Nick:                 rec.String("nick"),
				Photographer:         rec.String("photographer"),
				Status:               entity.ArticleStatus(rec.String("status")),
			}), nil
		},
		Record: func(a *entity.Article) (store.Record, error) {
			s := a.State()
			rec := store.Record{
				"title":                s.Title,
				"description":          s.Description,
				"text":                 s.Text,
				"keywords":             s.Keywords,
				"squareImage":          s.SquareImage,
				"horizontalLargeImage": s.HorizontalLargeImage,
				"horizontalSmallImage": s.HorizontalSmallImage,
				"verticalLargeImage":   s.VerticalLargeImage,
				"verticalSmallImage":   s.VerticalSmallImage,
				"category":             s.Category,
				"editor":               s.Editor,
				"source":               s.Source,
				"nick":                 s.Nick,
				"photographer":         s.Photographer,
				"status":               string(s.Status),
			}
			rec.SetID(s.ID)
			if s.Author != nil {
				rec["author"] = *s.Author
			}
			if s.Task != nil {
				rec["task"] = *s.Task
			}
			if s.ExtraLargeImage != "" {
				rec["extraLargeImage"] = s.ExtraLargeImage
			}
			return rec, nil
		},
		Defaults: func() store.Record {
			draft := entity.NewArticle(nil, 0, nil).State()
			return store.Record{
				"title":    draft.Title,
				"category": draft.Category,
				"status":   string(draft.Status),
			}
		},
	}
}

// UserFactory maps user records. Salt and hash travel hex-encoded.
func UserFactory() Factory[entity.User] {
	return Factory[entity.User]{
		Restore: func(rec store.Record) (*entity.User, error) {
			return entity.RestoreUser(entity.UserState{
				ID:       rec.ID(),
				Login:    rec.String("login"),
				Salt:     rec.String("salt"),
				Hash:     rec.String("hash"),
				Role:     rec.Int64("role"),
				Verified: rec.Bool("verified"),
				Removed:  rec.Bool("removed"),
			}), nil
		},
		Record: func(u *entity.User) (store.Record, error) {
			s := u.State()
			rec := store.Record{
				"login":    s.Login,
				"salt":     s.Salt,
				"hash":     s.Hash,
				"role":     s.Role,
				"verified": s.Verified,
				"removed":  s.Removed,
			}
			rec.SetID(s.ID)
			return rec, nil
		},
		Defaults: func() store.Record {
			return store.Record{
				"login":    "",
				"salt":     "",
				"hash":     "",
				"role":     entity.RoleTrainee,
				"verified": false,
				"removed":  false,
			}
		},
	}
}

// ContactFactory maps contact records.
func ContactFactory() Factory[entity.Contact] {
	return Factory[entity.Contact]{
		Restore: func(rec store.Record) (*entity.Contact, error) {
			return entity.RestoreContact(entity.ContactState{
				ID:     rec.ID(),
				UserID: rec.Int64("user"),
				Kind:   entity.ContactKind(rec.String("kind")),
				Value:  rec.String("value"),
			}), nil
		},
		Record: func(c *entity.Contact) (store.Record, error) {
			s := c.State()
			rec := store.Record{
				"user":  s.UserID,
				"kind":  string(s.Kind),
				"value": s.Value,
			}
			rec.SetID(s.ID)
			return rec, nil
		},
		Defaults: func() store.Record {
			return store.Record{"kind": string(entity.ContactMail), "value": ""}
		},
	}
}

// TwoFactorFactory maps two-factor secret records.
func TwoFactorFactory() Factory[entity.TwoFactorSecret] {
	return Factory[entity.TwoFactorSecret]{
		Restore: func(rec store.Record) (*entity.TwoFactorSecret, error) {
			return entity.RestoreTwoFactorSecret(entity.TwoFactorState{
				ID:     rec.ID(),
				UserID: rec.Int64("user"),
				Secret: rec.String("secret"),
			}), nil
		},
		Record: func(t *entity.TwoFactorSecret) (store.Record, error) {
			s := t.State()
			rec := store.Record{"user": s.UserID, "secret": s.Secret}
			rec.SetID(s.ID)
			return rec, nil
		},
		Defaults: func() store.Record {
			return store.Record{"secret": ""}
		},
	}
}

// VerificationFactory maps verification-code records.
func VerificationFactory() Factory[entity.VerificationRecord] {
	return Factory[entity.VerificationRecord]{
		Restore: func(rec store.Record) (*entity.VerificationRecord, error) {
			return entity.RestoreVerification(entity.VerificationState{
				ID:        rec.ID(),
				UserID:    rec.Int64("user"),
				Code:      rec.String("code"),
				Purpose:   entity.VerifyPurpose(rec.String("purpose")),
				CreatedAt: rec.Time("createdAt"),
			}), nil
		},
		Record: func(v *entity.VerificationRecord) (store.Record, error) {
			s := v.State()
			rec := store.Record{
				"user":    s.UserID,
				"code":    s.Code,
				"purpose": string(s.Purpose),
			}
			rec.SetTime("createdAt", s.CreatedAt)
			rec.SetID(s.ID)
			return rec, nil
		},
		Defaults: func() store.Record {
			return store.Record{"code": "", "purpose": string(entity.PurposeLogin)}
		},
	}
}

// TaskFactory maps task records.
func TaskFactory() Factory[entity.Task] {
	return Factory[entity.Task]{
		Restore: func(rec store.Record) (*entity.Task, error) {
			return entity.RestoreTask(entity.TaskState{
				ID:     rec.ID(),
				Title:  rec.String("title"),
				Author: rec.Int64("author"),
				Editor: rec.Int64("editor"),
				Fee:    rec.Int64("fee"),
				Status: entity.TaskStatus(rec.String("status")),
			}), nil
		},
		Record: func(t *entity.Task) (store.Record, error) {
			s := t.State()
			rec := store.Record{
				"title":  s.Title,
				"author": s.Author,
				"editor": s.Editor,
				"fee":    s.Fee,
				"status": string(s.Status),
			}
			rec.SetID(s.ID)
			return rec, nil
		},
		Defaults: func() store.Record {
			return store.Record{"title": "", "fee": int64(0), "status": string(entity.TaskOpen)}
		},
	}
}

// CategoryFactory maps category records.
func CategoryFactory() Factory[entity.Category] {
	return Factory[entity.Category]{
		Restore: func(rec store.Record) (*entity.Category, error) {
			return entity.RestoreCategory(entity.CategoryState{
				ID:   rec.ID(),
				Name: rec.String("name"),
			}), nil
		},
		Record: func(c *entity.Category) (store.Record, error) {
			s := c.State()
			rec := store.Record{"name": s.Name}
			rec.SetID(s.ID)
			return rec, nil
		},
		Defaults: func() store.Record {
			return store.Record{"name": ""}
		},
	}
}
