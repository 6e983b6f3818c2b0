// Package platform answers two questions the hook handlers care about:
// which OS family is running, and whether we are inside WSL. It also
// dispatches desktop notifications through the platform's own tooling.
package platform

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// Family identifies the operating system family for sound and notification
// dispatch.
type Family string

const (
	Darwin  Family = "darwin"
	Linux   Family = "linux"
	Windows Family = "windows"
	Other   Family = "other"
)

// Current returns the running platform family.
func Current() Family {
	switch runtime.GOOS {
	case "darwin":
		return Darwin
	case "linux":
		return Linux
	case "windows":
		return Windows
	default:
		return Other
	}
}

// IsWSL reports whether the process runs inside Windows Subsystem for
// Linux. WSL looks like Linux but can reach Windows binaries, so toast
// notifications and PowerShell playback are available there.
func IsWSL() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	if os.Getenv("WSL_DISTRO_NAME") != "" {
		return true
	}
	data, err := os.ReadFile("/proc/version")
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(data)), "microsoft")
}

// CommandAvailable reports whether a binary is on PATH.
func CommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Notify shows a desktop notification using the platform's native
// mechanism. Failures are returned but callers treat them as cosmetic.
func Notify(title, message string) error {
	switch {
	case Current() == Darwin:
		script := fmt.Sprintf(`display notification %q with title %q`, message, title)
		return exec.Command("osascript", "-e", script).Run()

	case Current() == Windows || IsWSL():
		return notifyWindows(title, message)

	case Current() == Linux:
		return exec.Command("notify-send", title, message).Run()

	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

func notifyWindows(title, message string) error {
	script := fmt.Sprintf(`
		[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null
		[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null
		$template = @"
		<toast>
			<visual>
				<binding template="ToastText02">
					<text id="1">%s</text>
					<text id="2">%s</text>
				</binding>
			</visual>
		</toast>
"@
		$xml = New-Object Windows.Data.Xml.Dom.XmlDocument
		$xml.LoadXml($template)
		$toast = [Windows.UI.Notifications.ToastNotification]::new($xml)
		[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier("Claude Code").Show($toast)
	`, title, message)
	return exec.Command(powershellBinary(), "-NoProfile", "-Command", script).Run()
}

// powershellBinary picks the PowerShell entry point, including the
// Windows-side binary when running under WSL.
func powershellBinary() string {
	if Current() == Windows {
		return "powershell"
	}
	if CommandAvailable("powershell.exe") {
		return "powershell.exe"
	}
	return "powershell"
}
