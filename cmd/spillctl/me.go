package main

import (
	"github.com/spf13/cobra"

	"spill/profile"
)

func newMeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Sign in and print the stored profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := a.client.Login(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), record)
		},
	}
}

func newAvatarCmd(a *app) *cobra.Command {
	var size int
	cmd := &cobra.Command{
		Use:   "avatar",
		Short: "Print the avatar the profile screen would show",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := a.client.Me(cmd.Context())
			if err != nil {
				return err
			}
			host := profile.NewHostPhoto(a.host)
			return printJSON(cmd.OutOrStdout(), profile.AvatarFor(cmd.Context(), host, *record, size))
		},
	}
	cmd.Flags().IntVar(&size, "size", profile.DefaultAvatarSize, "avatar size in pixels")
	return cmd
}
