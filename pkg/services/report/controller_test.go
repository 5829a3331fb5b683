package report

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/de-tools/instance-atlas/pkg/services/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func testSettings(t *testing.T) Settings {
	t.Helper()
	return Settings{
		Region:     "us-west-2",
		OutputPath: filepath.Join(t.TempDir(), "ec2_underutilized_report.csv"),
		From:       "ec2-report@example.com",
		Recipient:  "ops@example.com",
		Subject:    "AWS Underutilized EC2 Report",
	}
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("writes the CSV and sends the report", func(t *testing.T) {
		explorer := new(mockExplorer)
		fetcher := new(mockFetcher)
		sender := new(mockSender)
		settings := testSettings(t)

		explorer.On("ListRunningInstanceIDs", ctx).Return([]string{"i-abc"}, nil)
		explorer.On("GetInstanceType", ctx, "i-abc").Return("t3.large")
		explorer.On("GetInstanceName", ctx, "i-abc").Return("N/A")
		fetcher.On("GetAverage", ctx, "i-abc", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(5.0)
		sender.On("Send", ctx, mock.MatchedBy(func(msg mail.Message) bool {
			return msg.To == "ops@example.com" &&
				msg.Subject == "AWS Underutilized EC2 Report" &&
				msg.AttachmentName == "ec2_underutilized_report.csv" &&
				strings.Contains(msg.HTMLBody, "i-abc") &&
				strings.Contains(string(msg.Attachment), "i-abc")
		})).Return(nil)

		ctrl := NewController(explorer, fetcher, sender, settings)
		require.NoError(t, ctrl.Run(ctx))

		content, err := os.ReadFile(settings.OutputPath)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
		require.Len(t, lines, 2)
		assert.Equal(t,
			"Instance ID,Instance Type,CPU Utilization (%),Memory Utilization (%),Name,Recommendation",
			lines[0])
		assert.Equal(t, "i-abc,t3.large,5.00,5.00,N/A,Downsize to a smaller instance type", lines[1])

		sender.AssertExpectations(t)
	})

	t.Run("enumeration failure aborts before anything is sent", func(t *testing.T) {
		explorer := new(mockExplorer)
		sender := new(mockSender)
		settings := testSettings(t)

		explorer.On("ListRunningInstanceIDs", ctx).Return(nil, errors.New("api unavailable"))

		ctrl := NewController(explorer, new(mockFetcher), sender, settings)
		err := ctrl.Run(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to enumerate instances")
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		assert.NoFileExists(t, settings.OutputPath)
	})

	t.Run("transport failure is logged, run still succeeds", func(t *testing.T) {
		explorer := new(mockExplorer)
		fetcher := new(mockFetcher)
		sender := new(mockSender)
		settings := testSettings(t)

		explorer.On("ListRunningInstanceIDs", ctx).Return([]string{"i-abc"}, nil)
		explorer.On("GetInstanceType", ctx, "i-abc").Return("t3.large")
		explorer.On("GetInstanceName", ctx, "i-abc").Return("N/A")
		fetcher.On("GetAverage", ctx, "i-abc", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(45.0)
		sender.On("Send", ctx, mock.Anything).Return(errors.New("ses unavailable"))

		ctrl := NewController(explorer, fetcher, sender, settings)
		require.NoError(t, ctrl.Run(ctx))

		// Outputs were still generated.
		assert.FileExists(t, settings.OutputPath)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("zero instances still produces and sends a header-only report", func(t *testing.T) {
		explorer := new(mockExplorer)
		sender := new(mockSender)
		settings := testSettings(t)

		explorer.On("ListRunningInstanceIDs", ctx).Return([]string{}, nil)
		sender.On("Send", ctx, mock.MatchedBy(func(msg mail.Message) bool {
			return strings.Count(string(msg.Attachment), "\n") == 1
		})).Return(nil)

		ctrl := NewController(explorer, new(mockFetcher), sender, settings)
		require.NoError(t, ctrl.Run(ctx))

		content, err := os.ReadFile(settings.OutputPath)
		require.NoError(t, err)
		assert.Equal(t,
			"Instance ID,Instance Type,CPU Utilization (%),Memory Utilization (%),Name,Recommendation\n",
			string(content))
		sender.AssertExpectations(t)
	})

	t.Run("output file is rewritten, not appended", func(t *testing.T) {
		explorer := new(mockExplorer)
		sender := new(mockSender)
		settings := testSettings(t)

		require.NoError(t, os.WriteFile(settings.OutputPath, []byte("stale content\n"), 0o644))

		explorer.On("ListRunningInstanceIDs", ctx).Return([]string{}, nil)
		sender.On("Send", ctx, mock.Anything).Return(nil)

		ctrl := NewController(explorer, new(mockFetcher), sender, settings)
		require.NoError(t, ctrl.Run(ctx))

		content, err := os.ReadFile(settings.OutputPath)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "stale content")
	})
}

func TestGenerate_WindowSpansSevenDays(t *testing.T) {
	ctx := context.Background()
	explorer := new(mockExplorer)
	explorer.On("ListRunningInstanceIDs", ctx).Return([]string{}, nil)

	ctrl := NewController(explorer, new(mockFetcher), new(mockSender), testSettings(t))
	report, err := ctrl.Generate(ctx)

	require.NoError(t, err)
	assert.Equal(t, 7*24.0, report.Window.End.Sub(report.Window.Start).Hours())
	assert.Equal(t, "us-west-2", report.Region)
	assert.Empty(t, report.Records)
}
