package cli

import (
	"errors"
	"fmt"
	"io"

	"rentwear/internal/client"

	"github.com/spf13/cobra"
)

func newLoginCmd(g *globals) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and print a bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := g.client().Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.output, res, func(w io.Writer) {
				fmt.Fprintf(w, "Logged in as %s (%s)\n", res.User.Email, res.User.Role)
				fmt.Fprintf(w, "export RENTCTL_TOKEN=%s\n", res.Token)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newFeedbackCmd(g *globals) *cobra.Command {
	var req client.FeedbackRequest

	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Send feedback about the marketplace",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := g.client().SubmitFeedback(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.output, f, func(w io.Writer) {
				fmt.Fprintf(w, "Thanks %s, feedback %s recorded (%d/5)\n", f.Name, f.ID, f.Rating)
			})
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "your name")
	cmd.Flags().StringVar(&req.Email, "email", "", "your email")
	cmd.Flags().StringVar(&req.Message, "message", "", "feedback text")
	cmd.Flags().IntVar(&req.Rating, "rating", 5, "rating from 1 to 5")
	return cmd
}

func newReportCmd(g *globals) *cobra.Command {
	var req client.ReportRequest

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report a product or shop listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := g.client().CreateReport(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.output, r, func(w io.Writer) {
				fmt.Fprintf(w, "Report %s filed against %s %s (%s)\n", r.ID, r.TargetType, r.TargetID, r.Status)
			})
		},
	}
	cmd.Flags().StringVar(&req.TargetType, "type", "product", "target type: product or shop")
	cmd.Flags().StringVar(&req.TargetID, "id", "", "target id")
	cmd.Flags().StringVar(&req.Reason, "reason", "", "short reason")
	cmd.Flags().StringVar(&req.Details, "details", "", "optional details")
	return cmd
}

func newPasswordCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage your password",
	}

	var current, next string
	change := &cobra.Command{
		Use:   "change",
		Short: "Change the password of the logged in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.token == "" {
				return errors.New("not logged in: set RENTCTL_TOKEN or pass --token")
			}
			if err := g.client().ChangePassword(cmd.Context(), current, next); err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.output, map[string]string{"status": "changed"}, func(w io.Writer) {
				fmt.Fprintln(w, "Password changed")
			})
		},
	}
	change.Flags().StringVar(&current, "current", "", "current password")
	change.Flags().StringVar(&next, "new", "", "new password")
	_ = change.MarkFlagRequired("current")
	_ = change.MarkFlagRequired("new")

	cmd.AddCommand(change)
	return cmd
}

func newPaymentCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payment",
		Short: "Order payment status",
	}

	var status, reference string
	update := &cobra.Command{
		Use:   "update ORDER_ID",
		Short: "Record a payment result for an order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := g.client().UpdatePaymentStatus(cmd.Context(), args[0], status, reference)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), g.output, o, func(w io.Writer) {
				fmt.Fprintf(w, "Order %s is now %s (total %.2f)\n", o.ID, o.PaymentStatus, o.Total)
			})
		},
	}
	update.Flags().StringVar(&status, "status", "", "PAID, FAILED, CANCELLED or PENDING_PAYMENT")
	update.Flags().StringVar(&reference, "reference", "", "payment provider reference")
	_ = update.MarkFlagRequired("status")

	cmd.AddCommand(update)
	return cmd
}
