package cli

import (
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/roster/internal/rules"
)

func newUserCmd(a *app, out *printer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users and their subscriptions",
	}
	cmd.AddCommand(
		newUserListCmd(a, out),
		newUserGetCmd(a, out),
		newUserCreateCmd(a, out),
		newUserPatchCmd(a, out),
		newUserDeleteCmd(a, out),
		newSubscribeCmd(a, out),
		newUnsubscribeCmd(a, out),
	)
	return cmd
}

func newUserListCmd(a *app, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "list [filter...]",
		Short: "List users",
		Long: `List users in creation order. Filters are ANDed:

  key=value   field equals value
  key=a,b     field equals any of the values
  key~value   sequence field contains value

Example:
  roster user list lastName=Doe
  roster user list subscribedToUserIds~<user-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters, err := parseFilters(args)
			if err != nil {
				return err
			}
			users, err := a.svc.ListUsers(filters...)
			if err != nil {
				return serviceErr(err)
			}
			return out.users(users)
		},
	}
}

func newUserGetCmd(a *app, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.svc.GetUser(args[0])
			if err != nil {
				return serviceErr(err)
			}
			return out.user(u)
		},
	}
}

func newUserCreateCmd(a *app, out *printer) *cobra.Command {
	var in rules.UserInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.svc.CreateUser(in)
			if err != nil {
				return serviceErr(err)
			}
			return out.user(u)
		},
	}
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	return cmd
}

func newUserPatchCmd(a *app, out *printer) *cobra.Command {
	var firstName, lastName, email string
	cmd := &cobra.Command{
		Use:   "patch <id>",
		Short: "Change fields of a user",
		Long:  "Change the fields named by flags; fields without a flag keep their value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch rules.UserPatch
			if cmd.Flags().Changed("first-name") {
				patch.FirstName = &firstName
			}
			if cmd.Flags().Changed("last-name") {
				patch.LastName = &lastName
			}
			if cmd.Flags().Changed("email") {
				patch.Email = &email
			}
			u, err := a.svc.PatchUser(args[0], patch)
			if err != nil {
				return serviceErr(err)
			}
			return out.user(u)
		},
	}
	cmd.Flags().StringVar(&firstName, "first-name", "", "new first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "new last name")
	cmd.Flags().StringVar(&email, "email", "", "new email address")
	return cmd
}

func newUserDeleteCmd(a *app, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user with its profile and posts",
		Long: "Delete a user. Its profile and posts are deleted with it and every\n" +
			"subscription to it is removed. If any step fails nothing changes.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.svc.DeleteUser(args[0])
			if err != nil {
				return serviceErr(err)
			}
			return out.user(u)
		},
	}
}

func newSubscribeCmd(a *app, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "subscribe <subscriber-id> <target-id>",
		Short: "Subscribe one user to another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.svc.Subscribe(args[0], args[1])
			if err != nil {
				return serviceErr(err)
			}
			return out.user(u)
		},
	}
}

func newUnsubscribeCmd(a *app, out *printer) *cobra.Command {
	return &cobra.Command{
		Use:   "unsubscribe <subscriber-id> <target-id>",
		Short: "Remove one subscription",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.svc.Unsubscribe(args[0], args[1])
			if err != nil {
				return serviceErr(err)
			}
			return out.user(u)
		},
	}
}
