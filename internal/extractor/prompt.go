package extractor

import (
	"fmt"
	"strings"

	"github.com/callmepikachu/AniHub-Demo/internal/sentence"
)

const systemPrompt = `你是一个专业的场景提取助手。请从给定的文本中提取适合制作视频的场景。

要求：
1. 提取具有视觉表现力的场景
2. 每个场景应该包含具体的动作、人物或事物
3. 场景描述要简洁明了，适合作为视频生成的提示词
4. 返回JSON格式，包含以下字段：
   - id: 场景唯一标识符（scene_001, scene_002, ...）
   - prompt: 场景描述提示词
   - position: 场景所属句子的序号（见编号列表，从1开始）
   - duration: 建议视频时长（秒）
   - style: 视频风格（realistic/cartoon/animation）
   - type: 场景类型（narrative/technical）

示例输出：
[
    {
        "id": "scene_001",
        "prompt": "林则徐站在虎门海滩上，身着清朝官服，表情严肃",
        "position": 1,
        "duration": 5,
        "style": "realistic",
        "type": "narrative"
    }
]`

// userPrompt carries the text plus a numbered sentence list so that the
// model reports positions in the same numbering the interleaver uses.
func userPrompt(text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "请从以下文本中提取场景：\n\n%s\n\n句子编号：\n", text)
	for i, unit := range sentence.Split(text) {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sentence.Content(unit))
	}
	return b.String()
}
