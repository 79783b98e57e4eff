package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/rules"
)

func newPostCmd(a *app, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "post",
		Short: "Manage posts",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "list [filter...]",
			Short: "List posts",
			Long:  "List posts in creation order.\n\nExample:\n  roster post list userId=<user-id>",
			RunE: func(cmd *cobra.Command, args []string) error {
				filters, err := parseFilters(args)
				if err != nil {
					return err
				}
				posts, err := a.svc.ListPosts(filters...)
				if err != nil {
					return serviceErr(err)
				}
				return out.posts(posts)
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one post",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.svc.GetPost(args[0])
				if err != nil {
					return serviceErr(err)
				}
				return out.post(p)
			},
		},
		newPostCreateCmd(a, out),
		newPostPatchCmd(a, out),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a post",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := a.svc.DeletePost(args[0])
				if err != nil {
					return serviceErr(err)
				}
				return out.post(p)
			},
		},
	)
	return cmd
}

func newPostCreateCmd(a *app, out *printer) *cobra.Command {
	var in rules.PostInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.svc.CreatePost(in)
			if err != nil {
				return serviceErr(err)
			}
			return out.post(p)
		},
	}
	cmd.Flags().StringVar(&in.UserID, "user-id", "", "owning user")
	cmd.Flags().StringVar(&in.Title, "title", "", "title")
	cmd.Flags().StringVar(&in.Content, "content", "", "content")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func newPostPatchCmd(a *app, out *printer) *cobra.Command {
	var title, content string
	cmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change the title or content of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch rules.PostPatch
			if cmd.Flags().Changed("title") {
				patch.Title = &title
			}
			if cmd.Flags().Changed("content") {
				patch.Content = &content
			}
			p, err := a.svc.PatchPost(args[0], patch)
			if err != nil {
				return serviceErr(err)
			}
			return out.post(p)
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&content, "content", "", "new content")
	return cmd
}
