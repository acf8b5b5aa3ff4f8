package property

import (
	"encoding/base64"
	"strings"

	"github.com/hitoshi/bashachai/internal/model"
)

// ValidateImagePayload は画像のdata URIペイロードを検証する。
// 受理条件:
//   - "data:"で始まること
//   - メディアタイプが"image/"で始まること
//   - ";base64,"区切りを持ち、本文がbase64としてデコード可能であること
//
// 不正な場合はINVALID_IMAGEエラーを返す。indexはバッチ内の位置。
func ValidateImagePayload(index int, payload string) error {
	const prefix = "data:"
	if !strings.HasPrefix(payload, prefix) {
		return model.NewInvalidImageError(index, "data URI形式ではありません")
	}

	rest := payload[len(prefix):]
	mediaType, body, found := strings.Cut(rest, ";base64,")
	if !found {
		return model.NewInvalidImageError(index, "base64エンコーディング指定がありません")
	}
	if !strings.HasPrefix(mediaType, "image/") {
		return model.NewInvalidImageError(index, "画像以外のメディアタイプです")
	}
	if _, err := base64.StdEncoding.DecodeString(body); err != nil {
		return model.NewInvalidImageError(index, "base64本文をデコードできません")
	}

	return nil
}

// ValidateImageBatch は画像バッチ全体を検証する。
// 枚数上限超過、またはいずれか1枚でも不正なペイロードがあれば
// バッチ全体を拒否する。
func ValidateImageBatch(images []string) error {
	if len(images) > model.MaxImages {
		return model.NewTooManyImagesError(len(images))
	}
	for i, img := range images {
		if err := ValidateImagePayload(i, img); err != nil {
			return err
		}
	}
	return nil
}
