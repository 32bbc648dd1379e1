package models

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type TransactionType string

const (
	TxSpinReward    TransactionType = "SPIN_REWARD"
	TxAdReward      TransactionType = "AD_REWARD"
	TxDailyCheckin  TransactionType = "DAILY_CHECKIN"
	TxReferralBonus TransactionType = "REFERRAL_BONUS"
	TxWithdrawal    TransactionType = "WITHDRAWAL"
)

type WithdrawStatus string

const (
	WithdrawPending  WithdrawStatus = "PENDING"
	WithdrawApproved WithdrawStatus = "APPROVED"
	WithdrawRejected WithdrawStatus = "REJECTED"
)

// Account is the persisted user record. Coins must only change through the
// ledger; TotalSpins and TotalAdsWatched are lifetime counters and never
// decrease.
type Account struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Mobile          string    `json:"mobile"`
	PasswordHash    string    `json:"password,omitempty"`
	Role            Role      `json:"role"`
	Coins           int64     `json:"coins"`
	Spins           int       `json:"spins"`
	TotalSpins      int       `json:"totalSpins"`
	TotalAdsWatched int       `json:"totalAdsWatched"`
	DeviceID        string    `json:"deviceId"`
	SignupDate      time.Time `json:"signupDate"`
	LastLogin       time.Time `json:"lastLogin"`
	IsBlocked       bool      `json:"isBlocked"`
	ReferralCode    string    `json:"referralCode"`
	LastDailyBonus  string    `json:"lastDailyBonus,omitempty"`
}

// Transaction is an immutable ledger entry. Amount is a non-negative
// magnitude; WITHDRAWAL entries debit the account, every other type credits.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Type        TransactionType `json:"type"`
	Amount      int64           `json:"amount"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
}

type WithdrawRequest struct {
	ID             string         `json:"id"`
	UserID         string         `json:"userId"`
	UserName       string         `json:"userName"`
	Method         string         `json:"method"`
	Amount         int64          `json:"amount"`
	AccountDetails string         `json:"accountDetails"`
	Status         WithdrawStatus `json:"status"`
	Date           time.Time      `json:"date"`
}

const (
	MethodEasypaisa = "Easypaisa"
	MethodJazzCash  = "JazzCash"
	MethodGiftCard  = "GiftCard"
)

func IsWithdrawMethod(method string) bool {
	switch method {
	case MethodEasypaisa, MethodJazzCash, MethodGiftCard:
		return true
	}
	return false
}

type AppSettings struct {
	DailyFreeSpins         int    `json:"dailyFreeSpins"`
	CoinsPerSpinMin        int64  `json:"coinsPerSpinMin"`
	CoinsPerSpinMax        int64  `json:"coinsPerSpinMax"`
	CoinsPerAd             int64  `json:"coinsPerAd"`
	MinWithdraw            int64  `json:"minWithdraw"`
	ReferBonus             int64  `json:"referBonus"`
	BannerAdsEnabled       bool   `json:"bannerAdsEnabled"`
	InterstitialAdsEnabled bool   `json:"interstitialAdsEnabled"`
	RewardedAdsEnabled     bool   `json:"rewardedAdsEnabled"`
	NavigationAdsEnabled   bool   `json:"navigationAdsEnabled"`
	NavigationAdReward     int64  `json:"navigationAdReward"`
	BannerAdCode           string `json:"bannerAdCode"`
	InterstitialAdCode     string `json:"interstitialAdCode"`
	RewardedAdCode         string `json:"rewardedAdCode"`
	ActiveThemeID          string `json:"activeThemeId"`
	WithdrawalsEnabled     bool   `json:"withdrawalsEnabled"`
	WithdrawalInfoMessage  string `json:"withdrawalInfoMessage"`
}

// DefaultSettings is the fallback used whenever the settings collection is
// missing or unreadable.
func DefaultSettings() AppSettings {
	return AppSettings{
		DailyFreeSpins:         5,
		CoinsPerSpinMin:        10,
		CoinsPerSpinMax:        100,
		CoinsPerAd:             50,
		MinWithdraw:            5000,
		ReferBonus:             200,
		BannerAdsEnabled:       true,
		InterstitialAdsEnabled: true,
		RewardedAdsEnabled:     true,
		NavigationAdsEnabled:   true,
		NavigationAdReward:     5,
		BannerAdCode:           "CA-APP-PUB-BANNER-DEMO",
		InterstitialAdCode:     "CA-APP-PUB-INTER-DEMO",
		RewardedAdCode:         "CA-APP-PUB-REWARD-DEMO",
		ActiveThemeID:          "theme-indigo",
		WithdrawalsEnabled:     true,
		WithdrawalInfoMessage:  "Payments are processed within 24-48 hours.",
	}
}

type ThemeColors struct {
	Primary      string `json:"primary"`
	PrimaryLight string `json:"primaryLight"`
	PrimaryDark  string `json:"primaryDark"`
	Secondary    string `json:"secondary"`
	Background   string `json:"bg"`
}

type Theme struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Colors ThemeColors `json:"colors"`
}

func AvailableThemes() []Theme {
	return []Theme{
		{ID: "theme-indigo", Name: "Classic Indigo", Colors: ThemeColors{Primary: "#4f46e5", PrimaryLight: "#eef2ff", PrimaryDark: "#3730a3", Secondary: "#f59e0b", Background: "#f3f4f6"}},
		{ID: "theme-purple", Name: "Royal Purple", Colors: ThemeColors{Primary: "#9333ea", PrimaryLight: "#f3e8ff", PrimaryDark: "#6b21a8", Secondary: "#ec4899", Background: "#faf5ff"}},
		{ID: "theme-blue", Name: "Ocean Blue", Colors: ThemeColors{Primary: "#2563eb", PrimaryLight: "#eff6ff", PrimaryDark: "#1e40af", Secondary: "#06b6d4", Background: "#eff6ff"}},
		{ID: "theme-green", Name: "Emerald Forest", Colors: ThemeColors{Primary: "#059669", PrimaryLight: "#ecfdf5", PrimaryDark: "#065f46", Secondary: "#84cc16", Background: "#f0fdf4"}},
		{ID: "theme-red", Name: "Crimson Power", Colors: ThemeColors{Primary: "#dc2626", PrimaryLight: "#fef2f2", PrimaryDark: "#991b1b", Secondary: "#f97316", Background: "#fef2f2"}},
		{ID: "theme-orange", Name: "Sunset Orange", Colors: ThemeColors{Primary: "#ea580c", PrimaryLight: "#fff7ed", PrimaryDark: "#9a3412", Secondary: "#facc15", Background: "#fff7ed"}},
		{ID: "theme-pink", Name: "Hot Pink", Colors: ThemeColors{Primary: "#db2777", PrimaryLight: "#fdf2f8", PrimaryDark: "#9d174d", Secondary: "#6366f1", Background: "#fdf2f8"}},
		{ID: "theme-teal", Name: "Cyber Teal", Colors: ThemeColors{Primary: "#0d9488", PrimaryLight: "#f0fdfa", PrimaryDark: "#115e59", Secondary: "#14b8a6", Background: "#f0fdfa"}},
		{ID: "theme-slate", Name: "Midnight Slate", Colors: ThemeColors{Primary: "#475569", PrimaryLight: "#f8fafc", PrimaryDark: "#1e293b", Secondary: "#94a3b8", Background: "#f1f5f9"}},
		{ID: "theme-gold", Name: "Luxury Gold", Colors: ThemeColors{Primary: "#d97706", PrimaryLight: "#fffbeb", PrimaryDark: "#b45309", Secondary: "#78350f", Background: "#fffbeb"}},
	}
}
