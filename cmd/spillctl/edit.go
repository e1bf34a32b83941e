package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"spill/models"
	"spill/profile"
)

type editFlags struct {
	firstName   string
	lastName    string
	age         int
	gender      string
	bio         string
	interests   []string
	photoURLs   []string
	socialLinks map[string]string
	attach      []string
	clear       []string
}

func newEditCmd(a *app) *cobra.Command {
	f := &editFlags{}
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the profile and submit only what changed",
		Long: "Loads the profile, applies the given flags to the edit form and submits\n" +
			"the difference. Photos passed with --attach are uploaded in the same request.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, a, f)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.firstName, "first-name", "", "first name")
	fl.StringVar(&f.lastName, "last-name", "", "last name")
	fl.IntVar(&f.age, "age", 0, "age")
	fl.StringVar(&f.gender, "gender", "", "gender (male, female, other)")
	fl.StringVar(&f.bio, "bio", "", "bio")
	fl.StringSliceVar(&f.interests, "interests", nil, "replace interests")
	fl.StringSliceVar(&f.photoURLs, "photo-urls", nil, "replace photo URLs")
	fl.StringToStringVar(&f.socialLinks, "social", nil, "set social links, e.g. instagram=alice")
	fl.StringSliceVar(&f.attach, "attach", nil, "image files to upload")
	fl.StringSliceVar(&f.clear, "clear", nil, "fields to clear: "+fmt.Sprint(models.EditableFields))
	return cmd
}

func runEdit(cmd *cobra.Command, a *app, f *editFlags) error {
	ctx := cmd.Context()
	session, err := profile.Open(ctx, a.client,
		profile.WithLogger(a.logger),
		profile.WithSuccessDelay(0),
		profile.WithMaxAttachmentBytes(a.cfg.MaxAttachmentBytes))
	if err != nil {
		return err
	}
	defer session.Close()

	changed := cmd.Flags().Changed
	err = session.Edit(func(form *models.ProfileForm) {
		for _, field := range f.clear {
			clearField(form, field)
		}
		if changed("first-name") {
			form.FirstName = f.firstName
		}
		if changed("last-name") {
			form.LastName = f.lastName
		}
		if changed("age") {
			age := f.age
			form.Age = &age
		}
		if changed("gender") {
			form.Gender = models.Gender(f.gender)
		}
		if changed("bio") {
			form.Bio = f.bio
		}
		if changed("interests") {
			form.Interests = f.interests
		}
		if changed("photo-urls") {
			form.PhotoURLs = f.photoURLs
		}
	})
	if err != nil {
		return err
	}

	for platform, link := range f.socialLinks {
		if err := session.SetSocialLink(models.SocialPlatform(platform), link); err != nil {
			return fmt.Errorf("social link %s: %w", platform, err)
		}
	}

	if len(f.attach) > 0 {
		files, err := readAttachments(f.attach)
		if err != nil {
			return err
		}
		if _, err := session.AddAttachments(files...); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), session.Notice())
		}
	}

	if err := session.Submit(ctx); err != nil {
		if errors.Is(err, profile.ErrNoChanges) {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to update")
			return nil
		}
		var verr *profile.ValidationError
		if errors.As(err, &verr) {
			for path, msg := range verr.Fields {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", path, msg)
			}
			return errors.New("profile update rejected")
		}
		return errors.New(profile.FailureMessage(err))
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Profile updated successfully!")
	return printJSON(cmd.OutOrStdout(), session.Original())
}

func clearField(form *models.ProfileForm, field string) {
	switch field {
	case models.FieldFirstName:
		form.FirstName = ""
	case models.FieldLastName:
		form.LastName = ""
	case models.FieldAge:
		form.Age = nil
	case models.FieldGender:
		form.Gender = ""
	case models.FieldBio:
		form.Bio = ""
	case models.FieldInterests:
		form.Interests = nil
	case models.FieldPhotoURLs:
		form.PhotoURLs = nil
	case models.FieldSocialLinks:
		form.SocialLinks = nil
	}
}

func readAttachments(paths []string) ([]models.Attachment, error) {
	files := make([]models.Attachment, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", p, err)
		}
		files = append(files, models.Attachment{
			Name:        filepath.Base(p),
			ContentType: http.DetectContentType(data),
			Data:        data,
		})
	}
	return files, nil
}
