package models

const SettingKeyIntroMessage = "intro_message"
