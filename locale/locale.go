// Package locale holds the display strings for the two supported UI
// languages.
package locale

import (
	"fmt"
	"strings"
)

// Lang identifies a display language
type Lang string

const (
	Chinese Lang = "zh"
	English Lang = "en"
)

// Default is used when settings do not name a language
const Default = Chinese

// Parse maps a settings value to a Lang. Anything that is not English
// falls back to Chinese.
func Parse(s string) Lang {
	if strings.EqualFold(strings.TrimSpace(s), string(English)) {
		return English
	}
	return Chinese
}

// String keys
const (
	TitleMain              = "TitleMain"
	ButtonStartGame        = "ButtonStartGame"
	ButtonFavorite         = "ButtonFavorite"
	ButtonUnfavorite       = "ButtonUnfavorite"
	ButtonBackToParrot     = "ButtonBackToParrot"
	ButtonSettings         = "ButtonSettings"
	ButtonAbout            = "ButtonAbout"
	ButtonMute             = "ButtonMute"
	ButtonUnmute           = "ButtonUnmute"
	ButtonCopyCommand      = "ButtonCopyCommand"
	ButtonBack             = "ButtonBack"
	ButtonBrowse           = "ButtonBrowse"
	ButtonClear            = "ButtonClear"
	HintBottom             = "HintBottom"
	GamesCount             = "GamesCount"
	CategoryFavorites      = "CategoryFavorites"
	CategoryUncategorized  = "CategoryUncategorized"
	DescGenre              = "DescGenre"
	DescPlatform           = "DescPlatform"
	DescYear               = "DescYear"
	DescDeveloper          = "DescDeveloper"
	DescPublisher          = "DescPublisher"
	DescReleased           = "DescReleased"
	ExitConfirmMessage     = "ExitConfirmMessage"
	ExitConfirmTitle       = "ExitConfirmTitle"
	MsgNoGameSelected      = "MsgNoGameSelected"
	MsgLaunchNotConfigured = "MsgLaunchNotConfigured"
	MsgNoBatFolder         = "MsgNoBatFolder"
	MsgNoGameScripts       = "MsgNoGameScripts"
	MsgLaunchFailed        = "MsgLaunchFailed"
	MsgParrotNotFound      = "MsgParrotNotFound"
	MsgParrotNotFoundTitle = "MsgParrotNotFoundTitle"
	MsgParrotStartFailed   = "MsgParrotStartFailed"
	MsgCommandCopied       = "MsgCommandCopied"
	MsgFavoriteAdded       = "MsgFavoriteAdded"
	MsgFavoriteRemoved     = "MsgFavoriteRemoved"
	MsgFavoriteSaveFailed  = "MsgFavoriteSaveFailed"
	MsgSettingsReloaded    = "MsgSettingsReloaded"
	CaptionTip             = "CaptionTip"
	CaptionError           = "CaptionError"
	AboutMessage           = "AboutMessage"
	AboutTitle             = "AboutTitle"
	SettingsTitle          = "SettingsTitle"
	SettingsLanguageLabel  = "SettingsLanguageLabel"
	SettingsMediaPathLabel = "SettingsMediaPathLabel"
	SettingsMediaPathNone  = "SettingsMediaPathNone"
	SettingsDebugLogLabel  = "SettingsDebugLogLabel"
	SettingsVersionLabel   = "SettingsVersionLabel"
	SettingsOn             = "SettingsOn"
	SettingsOff            = "SettingsOff"
	SettingsLangZh         = "SettingsLangZh"
	SettingsLangEn         = "SettingsLangEn"
	NoCover                = "NoCover"
	EmptyCatalog           = "EmptyCatalog"
	ErrorSettingsTitle     = "ErrorSettingsTitle"
	ErrorSettingsMessage   = "ErrorSettingsMessage"
	ErrorSettingsHelp      = "ErrorSettingsHelp"
	ButtonResetContinue    = "ButtonResetContinue"
	ButtonExit             = "ButtonExit"
	VersionUnknown         = "VersionUnknown"
	SettingsFullscreen     = "SettingsFullscreen"
	SelectMediaFolder      = "SelectMediaFolder"
	MsgMediaPathInvalid    = "MsgMediaPathInvalid"
	MsgSettingsSaveFailed  = "MsgSettingsSaveFailed"
	MsgSettingsMalformed   = "MsgSettingsMalformed"
	PreviewLoading         = "PreviewLoading"
	PreviewPlaying         = "PreviewPlaying"
	PreviewNone            = "PreviewNone"
	PreviewMutedSuffix     = "PreviewMutedSuffix"
	ParrotVersion          = "ParrotVersion"
	ButtonApply            = "ButtonApply"
)

var tables = map[Lang]map[string]string{
	Chinese: {
		TitleMain:              "TeknoParrot BigBox",
		ButtonStartGame:        "开始游戏",
		ButtonFavorite:         "收藏游戏",
		ButtonUnfavorite:       "取消收藏",
		ButtonBackToParrot:     "返回鹦鹉",
		ButtonSettings:         "设置",
		ButtonAbout:            "关于本程序",
		ButtonMute:             "静音",
		ButtonUnmute:           "取消静音",
		ButtonCopyCommand:      "复制启动命令",
		ButtonBack:             "返回",
		ButtonBrowse:           "浏览…",
		ButtonClear:            "清除",
		HintBottom:             "←→ 切换游戏   ↑↓ 切换分类    Enter/A 启动    Esc/B 退出    F 收藏    M 静音",
		GamesCount:             "共 %d 款游戏",
		CategoryFavorites:      "★ 收藏",
		CategoryUncategorized:  "未分类",
		DescGenre:              "类型: ",
		DescPlatform:           "平台: ",
		DescYear:               "年份: ",
		DescDeveloper:          "开发商: ",
		DescPublisher:          "发行商: ",
		DescReleased:           "发行日期: ",
		ExitConfirmMessage:     "确定要退出 TeknoParrot BigBox 吗？",
		ExitConfirmTitle:       "退出确认",
		MsgNoGameSelected:      "尚未选择游戏。",
		MsgLaunchNotConfigured: "当前游戏尚未配置启动命令。",
		MsgNoBatFolder:         "未找到 UserProfiles 或 bat 目录，当前没有可用的游戏。",
		MsgNoGameScripts:       "未找到任何游戏配置或启动脚本。",
		MsgLaunchFailed:        "启动游戏失败：\n%s",
		MsgParrotNotFound:      "未找到 TeknoParrotUi.exe。\n\n请确认它与本程序位于同一目录。",
		MsgParrotNotFoundTitle: "无法返回鹦鹉 UI",
		MsgParrotStartFailed:   "启动 TeknoParrotUi 失败：\n%s",
		MsgCommandCopied:       "启动命令已复制",
		MsgFavoriteAdded:       "已收藏：%s",
		MsgFavoriteRemoved:     "已取消收藏：%s",
		MsgFavoriteSaveFailed:  "保存收藏失败",
		MsgSettingsReloaded:    "设置已重新加载",
		CaptionTip:             "提示",
		CaptionError:           "错误",
		AboutMessage:           "TeknoParrot BigBox 前端\n\n版本：%s\n用途：为 TeknoParrot 提供封面 + 视频风格启动界面。",
		AboutTitle:             "关于本程序",
		SettingsTitle:          "设置",
		SettingsLanguageLabel:  "界面语言",
		SettingsMediaPathLabel: "媒体目录",
		SettingsMediaPathNone:  "（默认 Media 目录）",
		SettingsDebugLogLabel:  "调试日志",
		SettingsVersionLabel:   "跳过版本检查",
		SettingsOn:             "开",
		SettingsOff:            "关",
		SettingsLangZh:         "中文",
		SettingsLangEn:         "English",
		NoCover:                "无封面",
		EmptyCatalog:           "没有可显示的游戏",
		ErrorSettingsTitle:     "设置错误",
		ErrorSettingsMessage:   "设置文件 \"%s\" 含有无效的值。",
		ErrorSettingsHelp:      "可以重置无效的值后继续，或退出后手动修改。",
		ButtonResetContinue:    "重置并继续",
		ButtonExit:             "退出",
		VersionUnknown:         "未知版本",
		SettingsFullscreen:     "全屏",
		SelectMediaFolder:      "选择媒体目录",
		MsgMediaPathInvalid:    "媒体目录不存在：%s",
		MsgSettingsSaveFailed:  "保存设置失败",
		MsgSettingsMalformed:   "设置文件已损坏，已使用默认值",
		PreviewLoading:         "正在加载预览…",
		PreviewPlaying:         "正在播放预览",
		PreviewNone:            "无预览视频",
		PreviewMutedSuffix:     "（静音）",
		ParrotVersion:          "TeknoParrot 版本：%s",
		ButtonApply:            "应用",
	},
	English: {
		TitleMain:              "TeknoParrot BigBox",
		ButtonStartGame:        "Start Game",
		ButtonFavorite:         "Add to Favorites",
		ButtonUnfavorite:       "Remove from Favorites",
		ButtonBackToParrot:     "Back to Parrot",
		ButtonSettings:         "Settings",
		ButtonAbout:            "About",
		ButtonMute:             "Mute",
		ButtonUnmute:           "Unmute",
		ButtonCopyCommand:      "Copy Launch Command",
		ButtonBack:             "Back",
		ButtonBrowse:           "Browse...",
		ButtonClear:            "Clear",
		HintBottom:             "←→ Change game   ↑↓ Change category    Enter/A Launch    Esc/B Exit    F Favorite    M Mute",
		GamesCount:             "%d games",
		CategoryFavorites:      "★ Favorites",
		CategoryUncategorized:  "Uncategorized",
		DescGenre:              "Genre: ",
		DescPlatform:           "Platform: ",
		DescYear:               "Year: ",
		DescDeveloper:          "Developer: ",
		DescPublisher:          "Publisher: ",
		DescReleased:           "Released: ",
		ExitConfirmMessage:     "Are you sure you want to exit TeknoParrot BigBox?",
		ExitConfirmTitle:       "Exit",
		MsgNoGameSelected:      "No game selected.",
		MsgLaunchNotConfigured: "Launch command not configured for this game.",
		MsgNoBatFolder:         "Neither UserProfiles nor bat folder was found. No games available.",
		MsgNoGameScripts:       "No game profiles or launch scripts found.",
		MsgLaunchFailed:        "Failed to launch game:\n%s",
		MsgParrotNotFound:      "TeknoParrotUi.exe not found.\n\nPlease ensure it is in the same folder as this program.",
		MsgParrotNotFoundTitle: "Cannot open Parrot UI",
		MsgParrotStartFailed:   "Failed to start TeknoParrotUi:\n%s",
		MsgCommandCopied:       "Launch command copied",
		MsgFavoriteAdded:       "Added to favorites: %s",
		MsgFavoriteRemoved:     "Removed from favorites: %s",
		MsgFavoriteSaveFailed:  "Failed to save favorites",
		MsgSettingsReloaded:    "Settings reloaded",
		CaptionTip:             "Info",
		CaptionError:           "Error",
		AboutMessage:           "TeknoParrot BigBox\n\nVersion: %s\nA cover + video style launcher for TeknoParrot.",
		AboutTitle:             "About",
		SettingsTitle:          "Settings",
		SettingsLanguageLabel:  "Language",
		SettingsMediaPathLabel: "Media folder",
		SettingsMediaPathNone:  "(default Media folder)",
		SettingsDebugLogLabel:  "Debug log",
		SettingsVersionLabel:   "Skip version check",
		SettingsOn:             "On",
		SettingsOff:            "Off",
		SettingsLangZh:         "中文",
		SettingsLangEn:         "English",
		NoCover:                "No cover",
		EmptyCatalog:           "No games to show",
		ErrorSettingsTitle:     "Settings Error",
		ErrorSettingsMessage:   "The settings file \"%s\" contains invalid values.",
		ErrorSettingsHelp:      "You can reset the invalid values and continue, or exit to fix the file manually.",
		ButtonResetContinue:    "Reset and Continue",
		ButtonExit:             "Exit",
		VersionUnknown:         "Unknown",
		SettingsFullscreen:     "Fullscreen",
		SelectMediaFolder:      "Select media folder",
		MsgMediaPathInvalid:    "Media folder does not exist: %s",
		MsgSettingsSaveFailed:  "Failed to save settings",
		MsgSettingsMalformed:   "Settings file is damaged, using defaults",
		PreviewLoading:         "Loading preview...",
		PreviewPlaying:         "Playing preview",
		PreviewNone:            "No preview video",
		PreviewMutedSuffix:     " (muted)",
		ParrotVersion:          "TeknoParrot version: %s",
		ButtonApply:            "Apply",
	},
}

// Get returns the string for key in lang. Missing keys fall back to the
// Chinese table and finally to the key itself.
func Get(lang Lang, key string) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables[Default][key]; ok {
		return s
	}
	return key
}

// Format is Get followed by fmt.Sprintf
func Format(lang Lang, key string, args ...any) string {
	return fmt.Sprintf(Get(lang, key), args...)
}
